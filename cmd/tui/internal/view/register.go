package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/keystone-apparel/keystone/internal/catalog"
	"github.com/keystone-apparel/keystone/internal/presale"
	"github.com/keystone-apparel/keystone/internal/pricing"
	"github.com/keystone-apparel/keystone/internal/sale"
)

type registerState int

const (
	registerStateForm registerState = iota
	registerStateSaving
	registerStateResult
)

const (
	discountFlatTen = "flat_ten_off_tshirt"
	discountThirty  = "thirty_percent_off"
	discountFifty   = "fifty_percent_off_hoodie"
	discountSmall   = "small"
	discountLarge   = "large"
)

// registerDraft holds the form bindings. It lives behind a pointer so the
// huh fields keep writing to it while the model is copied around.
type registerDraft struct {
	productType  string
	color        string
	design       string
	size         string
	payment      string
	seller       string
	discounts    []string
	bundle       pricing.Bundle
	secondColor  string
	secondDesign string
	secondSize   string
	notes        string
	presale      bool
}

func (d *registerDraft) submission() sale.Submission {
	sub := sale.Submission{
		ProductType:   catalog.ProductType(d.productType),
		Color:         catalog.Color(d.color),
		Design:        catalog.Design(d.design),
		Size:          catalog.Size(d.size),
		PaymentMethod: catalog.PaymentMethod(d.payment),
		Seller:        d.seller,
		Notes:         d.notes,
		Bundle:        d.bundle,
	}

	for _, name := range d.discounts {
		switch name {
		case discountFlatTen:
			sub.Discounts.FlatTenOffTshirt = true
		case discountThirty:
			sub.Discounts.ThirtyPercentOff = true
		case discountFifty:
			sub.Discounts.FiftyPercentOffHoodie = true
		case discountSmall:
			sub.Discounts.Small = true
		case discountLarge:
			sub.Discounts.Large = true
		}
	}

	if sub.Bundle.Active() {
		sub.SecondItem = &sale.SecondItem{
			Color:  catalog.Color(d.secondColor),
			Design: catalog.Design(d.secondDesign),
			Size:   catalog.Size(d.secondSize),
		}
	}

	return sub
}

// RegisterModel rings up one submission as a sale or, when toggled, a presale.
type RegisterModel struct {
	CommonModel
	saleService    *sale.Service
	presaleService *presale.Service
	reports        Invalidator

	state  registerState
	draft  *registerDraft
	form   *huh.Form
	status string
	err    error
}

func NewRegisterModel(saleSvc *sale.Service, presaleSvc *presale.Service, reports Invalidator) RegisterModel {
	m := RegisterModel{
		saleService:    saleSvc,
		presaleService: presaleSvc,
		reports:        reports,
		draft:          &registerDraft{},
	}
	m.form = m.buildForm()

	return m
}

func (m RegisterModel) Title() string { return "Register Sale" }

func (m RegisterModel) ShortHelp() string {
	if m.state == registerStateResult {
		return "Enter: new sale | Esc: back to menu"
	}

	return "Esc: back | Enter: next"
}

func (m RegisterModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(registerResultMsg); ok {
		m.state = registerStateResult
		m.err = res.err
		m.status = res.summary

		return m, nil
	}

	switch m.state {
	case registerStateForm:
		return m.updateForm(msg)
	case registerStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.Type {
			case tea.KeyEsc:
				return m, Back
			case tea.KeyEnter:
				next := NewRegisterModel(m.saleService, m.presaleService, m.reports)
				return next, next.Init()
			}
		}
	}

	return m, nil
}

func (m RegisterModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		return m, Back
	case huh.StateCompleted:
		m.state = registerStateSaving
		return m, m.saveCmd()
	}

	return m, cmd
}

func (m RegisterModel) View() string {
	switch m.state {
	case registerStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case registerStateSaving:
		return lipgloss.NewStyle().Padding(2).Render("Saving...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(
			errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Enter to start over, Esc to go back)",
		)
	}

	return lipgloss.NewStyle().Padding(2).Render(
		successStyle.Render(m.status) + "\n\n(Enter for next sale, Esc to go back)",
	)
}

func (m RegisterModel) buildForm() *huh.Form {
	d := m.draft

	isSticker := func() bool { return d.productType == string(catalog.ProductSticker) }

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Product").
				Options(options(catalog.ProductTypes)...).
				Value(&d.productType),
			huh.NewSelect[string]().
				Title("Design").
				OptionsFunc(func() []huh.Option[string] {
					return options(catalog.DesignsFor(catalog.ProductType(d.productType)))
				}, &d.productType).
				Value(&d.design),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color").
				Options(options(catalog.Colors)...).
				Value(&d.color),
			huh.NewSelect[string]().
				Title("Size").
				Options(options(catalog.Sizes)...).
				Value(&d.size),
		).WithHideFunc(isSticker),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Payment").
				Options(options(catalog.PaymentMethods)...).
				Value(&d.payment),
			huh.NewSelect[string]().
				Title("Seller").
				Options(sellerOptions()...).
				Value(&d.seller),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Discounts").
				Options(
					huh.NewOption("$10 off T-Shirt (14.99)", discountFlatTen),
					huh.NewOption("30% off", discountThirty),
					huh.NewOption("50% off Hoodie", discountFifty),
					huh.NewOption("$2 off", discountSmall),
					huh.NewOption("$15 off", discountLarge),
				).
				Value(&d.discounts),
			huh.NewSelect[pricing.Bundle]().
				Title("Bundle").
				Options(bundleOptions()...).
				Value(&d.bundle),
		).WithHideFunc(isSticker),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Second T-Shirt Design").
				Options(options(catalog.Designs)...).
				Value(&d.secondDesign),
			huh.NewSelect[string]().
				Title("Second T-Shirt Color").
				Options(options(catalog.Colors)...).
				Value(&d.secondColor),
			huh.NewSelect[string]().
				Title("Second T-Shirt Size").
				Options(options(catalog.Sizes)...).
				Value(&d.secondSize),
		).WithHideFunc(func() bool { return !d.bundle.Active() || isSticker() }),
		huh.NewGroup(
			huh.NewText().
				Title("Notes").
				CharLimit(1000).
				Value(&d.notes),
			huh.NewConfirm().
				Title("Record as presale?").
				Affirmative("Presale").
				Negative("Sale").
				Value(&d.presale),
			huh.NewNote().
				Title("Price").
				DescriptionFunc(func() string {
					return FormatMoney(pricing.Compute(d.submission().Quote()))
				}, d),
		),
	).WithWidth(60).WithShowHelp(false)
}

func options[T ~string](opts []catalog.Option[T]) []huh.Option[string] {
	out := make([]huh.Option[string], 0, len(opts))
	for _, o := range opts {
		out = append(out, huh.NewOption(o.Label, string(o.Value)))
	}

	return out
}

func sellerOptions() []huh.Option[string] {
	out := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, name := range catalog.Sellers {
		out = append(out, huh.NewOption(name, name))
	}

	return out
}

type registerResultMsg struct {
	summary string
	err     error
}

func (m RegisterModel) saveCmd() tea.Cmd {
	sub := m.draft.submission()
	asPresale := m.draft.presale

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var items []sale.Item

		if asPresale {
			presales, err := m.presaleService.Create(ctx, sub)
			if err != nil {
				return registerResultMsg{err: err}
			}

			for _, p := range presales {
				items = append(items, p.Item)
			}
		} else {
			sales, err := m.saleService.Register(ctx, sub)
			if err != nil {
				return registerResultMsg{err: err}
			}

			for _, s := range sales {
				items = append(items, s.Item)
			}

			m.reports.Invalidate(ctx)
		}

		kind := "Sale"
		if asPresale {
			kind = "Presale"
		}

		return registerResultMsg{summary: kind + " recorded:\n\n" + describeItems(items)}
	}
}

func describeItems(items []sale.Item) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("  %s  %s  %s/%s  %s (%s)",
			it.ProductType.Label(),
			it.Design.Label(),
			orDash(string(it.Color)),
			orDash(it.Size.Label()),
			FormatMoney(it.Price),
			it.PaymentMethod.Label(),
		))
	}

	return strings.Join(lines, "\n")
}

func bundleOptions() []huh.Option[pricing.Bundle] {
	opts := []huh.Option[pricing.Bundle]{huh.NewOption("None", pricing.BundleNone)}
	for _, b := range pricing.Bundles {
		opts = append(opts, huh.NewOption(b.Label, b.Value))
	}

	return opts
}
