package services

import (
	"context"
	"strings"
	"sync"
	"time"
)

type ProjectType string

const (
	ProjectWebsite ProjectType = "website"
	ProjectApp     ProjectType = "app"
)

// WizardOption is a selectable entry in one of the wizard vocabularies.
type WizardOption struct {
	ID    string
	Label string
	Desc  string
}

var WebsiteTypes = []WizardOption{
	{ID: "landing", Label: "Landing Page", Desc: "Jedna strona promująca produkt/usługę"},
	{ID: "business", Label: "Firmowa", Desc: "Prezentacja firmy, usług, zespołu"},
	{ID: "portfolio", Label: "Portfolio", Desc: "Prezentacja prac i projektów"},
	{ID: "blog", Label: "Blog", Desc: "Artykuły, wpisy, aktualności"},
	{ID: "ecommerce", Label: "Sklep online", Desc: "Sprzedaż produktów online"},
	{ID: "booking", Label: "Z rezerwacjami", Desc: "Umawianie wizyt, kalendarz"},
}

var AppTypes = []WizardOption{
	{ID: "business", Label: "Biznesowa", Desc: "Zarządzanie firmą, CRM, ERP"},
	{ID: "booking", Label: "Rezerwacje", Desc: "Umawianie wizyt, kalendarz"},
	{ID: "ecommerce", Label: "E-commerce", Desc: "Sklep, płatności, koszyk"},
	{ID: "social", Label: "Społecznościowa", Desc: "Profile, posty, interakcje"},
	{ID: "fitness", Label: "Fitness/Sport", Desc: "Treningi, postępy, plany"},
	{ID: "education", Label: "Edukacyjna", Desc: "Kursy, lekcje, quizy"},
}

var WebsiteFeatures = []WizardOption{
	{ID: "gallery", Label: "Galeria zdjęć"},
	{ID: "contact", Label: "Formularz kontaktowy"},
	{ID: "blog", Label: "Blog / Aktualności"},
	{ID: "booking", Label: "System rezerwacji"},
	{ID: "payments", Label: "Płatności online"},
	{ID: "accounts", Label: "Konta użytkowników"},
	{ID: "analytics", Label: "Statystyki / Analytics"},
	{ID: "multilang", Label: "Wiele języków"},
}

var AppFeatures = []WizardOption{
	{ID: "accounts", Label: "Konta użytkowników"},
	{ID: "payments", Label: "Płatności online"},
	{ID: "notifications", Label: "Powiadomienia push"},
	{ID: "calendar", Label: "Kalendarz / Rezerwacje"},
	{ID: "chat", Label: "Czat / Wiadomości"},
	{ID: "gallery", Label: "Galeria / Media"},
	{ID: "stats", Label: "Dashboard / Statystyki"},
	{ID: "offline", Label: "Tryb offline"},
}

var BudgetOptions = []WizardOption{
	{ID: "small", Label: "2-5 tys. zł", Desc: "Prosty projekt"},
	{ID: "medium", Label: "5-15 tys. zł", Desc: "Średni projekt"},
	{ID: "large", Label: "15-30 tys. zł", Desc: "Rozbudowany projekt"},
	{ID: "enterprise", Label: "30+ tys. zł", Desc: "Duży projekt"},
	{ID: "unknown", Label: "Nie wiem jeszcze", Desc: "Pomóż mi oszacować"},
}

var TimelineOptions = []WizardOption{
	{ID: "asap", Label: "Jak najszybciej", Desc: "2-4 tygodnie"},
	{ID: "month", Label: "1-2 miesiące", Desc: "Standardowy czas"},
	{ID: "quarter", Label: "2-3 miesiące", Desc: "Rozbudowany projekt"},
	{ID: "flexible", Label: "Elastyczny termin", Desc: "Bez pośpiechu"},
}

type WizardStep int

const (
	StepProjectType WizardStep = iota
	StepSpecificType
	StepFeatures
	StepBudgetTimeline
	StepContact
	StepSuccess
)

// Brief is the structured project requirement collected by the wizard.
// SubType and Features are only meaningful relative to ProjectType.
type Brief struct {
	ProjectType ProjectType
	SubType     string
	Features    []string
	Budget      string
	Timeline    string
	Name        string
	Email       string
	Description string
}

// BriefSummary is the data the success panel displays.
type BriefSummary struct {
	ProjectTypeLabel string
	SubTypeLabel     string
	FeatureCount     int
	BudgetLabel      string
	TimelineLabel    string
}

// ContactSender submits the composed brief; implemented by ContactService.
type ContactSender interface {
	Submit(ctx context.Context, msg ContactMessage) error
}

const (
	wizardAutoAdvanceDelay = 300 * time.Millisecond

	notSelected   = "Nie wybrano"
	noFeatures    = "Brak"
	noDescription = "Brak opisu"
)

// Wizard is the linear six-step brief flow. Selections at the first two
// steps schedule a cancellable auto-advance; any manual transition
// cancels the pending one so a stale advance can never double-fire.
type Wizard struct {
	mu         sync.Mutex
	sender     ContactSender
	step       WizardStep
	brief      Brief
	submitting bool

	advGen        int
	cancelAdvance func()
	schedule      func(d time.Duration, f func()) func()
}

func NewWizard(sender ContactSender) *Wizard {
	return &Wizard{
		sender: sender,
		schedule: func(d time.Duration, f func()) func() {
			t := time.AfterFunc(d, f)
			return func() { t.Stop() }
		},
	}
}

func (w *Wizard) Step() WizardStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Brief returns a snapshot of the collected data.
func (w *Wizard) Brief() Brief {
	w.mu.Lock()
	defer w.mu.Unlock()
	b := w.brief
	b.Features = append([]string(nil), w.brief.Features...)
	return b
}

// SelectProjectType records the type and schedules the auto-advance.
// Switching type clears the sub-type and features, whose vocabularies
// differ between types.
func (w *Wizard) SelectProjectType(pt ProjectType) error {
	if pt != ProjectWebsite && pt != ProjectApp {
		return NewInvalidError("unknown project type: " + string(pt))
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.brief.ProjectType != pt {
		w.brief.SubType = ""
		w.brief.Features = nil
	}
	w.brief.ProjectType = pt
	if w.step == StepProjectType {
		w.scheduleAdvanceLocked()
	}
	return nil
}

// SelectSubType records the sub-category and schedules the auto-advance.
func (w *Wizard) SelectSubType(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.brief.ProjectType == "" {
		return NewInvalidError("project type not selected")
	}
	if findOption(w.subTypeOptionsLocked(), id) == nil {
		return NewInvalidError("unknown sub-type: " + id)
	}
	w.brief.SubType = id
	if w.step == StepSpecificType {
		w.scheduleAdvanceLocked()
	}
	return nil
}

// ToggleFeature adds or removes a feature, keeping insertion order.
func (w *Wizard) ToggleFeature(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.brief.ProjectType == "" {
		return NewInvalidError("project type not selected")
	}
	if findOption(w.featureOptionsLocked(), id) == nil {
		return NewInvalidError("unknown feature: " + id)
	}
	for i, f := range w.brief.Features {
		if f == id {
			w.brief.Features = append(w.brief.Features[:i], w.brief.Features[i+1:]...)
			return nil
		}
	}
	w.brief.Features = append(w.brief.Features, id)
	return nil
}

func (w *Wizard) SetBudget(id string) error {
	if findOption(BudgetOptions, id) == nil {
		return NewInvalidError("unknown budget tier: " + id)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.brief.Budget = id
	return nil
}

func (w *Wizard) SetTimeline(id string) error {
	if findOption(TimelineOptions, id) == nil {
		return NewInvalidError("unknown timeline tier: " + id)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.brief.Timeline = id
	return nil
}

func (w *Wizard) SetContact(name, email, description string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.brief.Name = name
	w.brief.Email = email
	w.brief.Description = description
}

// Next advances one step. The success step is only reachable through a
// successful submission, so manual navigation clamps at the contact step.
func (w *Wizard) Next() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancelAdvanceLocked()
	w.nextLocked()
}

// Back goes one step back; disallowed from the first and success steps.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancelAdvanceLocked()
	if w.step > StepProjectType && w.step < StepSuccess {
		w.step--
	}
}

// CanSubmit reports whether the submit control is enabled.
func (w *Wizard) CanSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canSubmitLocked()
}

func (w *Wizard) canSubmitLocked() bool {
	return w.step == StepContact &&
		strings.TrimSpace(w.brief.Name) != "" &&
		strings.TrimSpace(w.brief.Email) != "" &&
		!w.submitting
}

// Submit composes the brief message and sends it through the relay. On
// failure the wizard stays at the contact step with the brief intact so
// the user can retry immediately.
func (w *Wizard) Submit(ctx context.Context) error {
	w.mu.Lock()
	if !w.canSubmitLocked() {
		w.mu.Unlock()
		return NewInvalidError("name and email are required")
	}
	w.cancelAdvanceLocked()
	w.submitting = true
	msg := ContactMessage{
		Name:    w.brief.Name,
		Email:   w.brief.Email,
		Message: w.composeMessageLocked(),
	}
	w.mu.Unlock()

	err := w.sender.Submit(ctx, msg)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		return err
	}
	w.step = StepSuccess
	return nil
}

// Summary returns the human-readable labels for the success panel.
func (w *Wizard) Summary() BriefSummary {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := BriefSummary{FeatureCount: len(w.brief.Features)}
	switch w.brief.ProjectType {
	case ProjectWebsite:
		s.ProjectTypeLabel = "Strona WWW"
	case ProjectApp:
		s.ProjectTypeLabel = "Aplikacja"
	}
	s.SubTypeLabel = optionLabel(w.subTypeOptionsLocked(), w.brief.SubType)
	s.BudgetLabel = optionLabel(BudgetOptions, w.brief.Budget)
	s.TimelineLabel = optionLabel(TimelineOptions, w.brief.Timeline)
	return s
}

// Close discards the brief; reopening starts at the first step.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancelAdvanceLocked()
	w.brief = Brief{}
	w.step = StepProjectType
	w.submitting = false
}

func (w *Wizard) nextLocked() {
	if w.step < StepContact {
		w.step++
	}
}

func (w *Wizard) scheduleAdvanceLocked() {
	w.cancelAdvanceLocked()
	w.advGen++
	gen := w.advGen
	from := w.step
	w.cancelAdvance = w.schedule(wizardAutoAdvanceDelay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		// A manual transition since scheduling invalidates this advance.
		if w.advGen != gen || w.step != from {
			return
		}
		w.cancelAdvance = nil
		w.nextLocked()
	})
}

func (w *Wizard) cancelAdvanceLocked() {
	if w.cancelAdvance != nil {
		w.cancelAdvance()
		w.cancelAdvance = nil
	}
	w.advGen++
}

func (w *Wizard) subTypeOptionsLocked() []WizardOption {
	if w.brief.ProjectType == ProjectApp {
		return AppTypes
	}
	return WebsiteTypes
}

func (w *Wizard) featureOptionsLocked() []WizardOption {
	if w.brief.ProjectType == ProjectApp {
		return AppFeatures
	}
	return WebsiteFeatures
}

func (w *Wizard) composeMessageLocked() string {
	var b strings.Builder
	b.WriteString("BRIEF PROJEKTU:\n\n")
	if w.brief.ProjectType == ProjectApp {
		b.WriteString("Typ: Aplikacja\n")
		b.WriteString("Typ aplikacji: " + orPlaceholder(optionLabel(AppTypes, w.brief.SubType), notSelected) + "\n")
	} else {
		b.WriteString("Typ: Strona WWW\n")
		b.WriteString("Typ strony: " + orPlaceholder(optionLabel(WebsiteTypes, w.brief.SubType), notSelected) + "\n")
	}
	b.WriteString("\n")
	if len(w.brief.Features) > 0 {
		b.WriteString("Funkcje: " + strings.Join(w.brief.Features, ", ") + "\n")
	} else {
		b.WriteString("Funkcje: " + noFeatures + "\n")
	}
	b.WriteString("Budżet: " + orPlaceholder(optionLabel(BudgetOptions, w.brief.Budget), notSelected) + "\n")
	b.WriteString("Termin: " + orPlaceholder(optionLabel(TimelineOptions, w.brief.Timeline), notSelected) + "\n")
	b.WriteString("\nOpis projektu:\n")
	b.WriteString(orPlaceholder(w.brief.Description, noDescription))
	return b.String()
}

func findOption(opts []WizardOption, id string) *WizardOption {
	for i := range opts {
		if opts[i].ID == id {
			return &opts[i]
		}
	}
	return nil
}

func optionLabel(opts []WizardOption, id string) string {
	if o := findOption(opts, id); o != nil {
		return o.Label
	}
	return ""
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
