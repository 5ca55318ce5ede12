// Package wizard holds the state machine behind the create and edit flows:
// type, content, design, preview, and the final save to the backend.
package wizard

import (
	"context"
	"errors"
	"strings"

	"github.com/cristianadrielbraun/beam/internal/api"
	"github.com/cristianadrielbraun/beam/internal/content"
	"github.com/cristianadrielbraun/beam/internal/design"
)

var (
	// ErrStepInvalid is returned by Next while the current step is incomplete
	// and by Save outside a complete preview step.
	ErrStepInvalid = errors.New("current step is incomplete")
	// ErrEmptyContent is returned by Save when there is nothing to encode.
	ErrEmptyContent = errors.New("nothing to encode")
	ErrInvalidColor = errors.New("invalid hex colour")
	ErrUnknownField = errors.New("unknown colour field")
)

type Step int

const (
	StepType Step = iota + 1
	StepContent
	StepDesign
	StepPreview
)

// Steps lists the flow in order.
var Steps = []Step{StepType, StepContent, StepDesign, StepPreview}

func (s Step) String() string {
	switch s {
	case StepType:
		return "Type"
	case StepContent:
		return "Content"
	case StepDesign:
		return "Design"
	case StepPreview:
		return "Preview"
	default:
		return "Unknown"
	}
}

// Swatches are the quick-select colours offered next to every colour input.
var Swatches = []string{"#000000", "#2563eb", "#16a34a", "#dc2626", "#9333ea", "#ea580c", "#ffffff"}

// Colour fields accepted by SetColor. They match the design JSON keys.
const (
	FieldColor          = "color"
	FieldBgColor        = "bgColor"
	FieldFrameColor     = "frameColor"
	FieldFrameTextColor = "frameTextColor"
)

// WiFiPlaceholder fills the SSID of a wifi code opened for editing; the
// backend only keeps the encoded string.
const WiFiPlaceholder = "Update to change"

type Wizard struct {
	Step    Step
	Type    content.Type
	Content content.Payload
	Design  design.Design

	// Err holds the message of the last failed save.
	Err string
	// Created is set once the code has been saved.
	Created *api.Record

	// EditID is set when the wizard edits an existing record.
	EditID api.ID
	// origTarget is the stored target of an edited record.
	origTarget string
}

// New starts a wizard. A known seed type skips the type step.
func New(seed string) *Wizard {
	w := &Wizard{Step: StepType, Design: design.Default()}
	if t, ok := content.ParseType(seed); ok {
		w.Type = t
		w.Step = StepContent
	}
	return w
}

// FromRecord opens a persisted record for editing.
func FromRecord(rec api.Record) (*Wizard, error) {
	d, err := rec.Design()
	if err != nil {
		return nil, err
	}
	t, ok := content.ParseType(rec.QRType)
	if !ok {
		t = content.TypeURL
	}

	w := &Wizard{
		Step:       StepContent,
		Type:       t,
		Design:     d,
		EditID:     rec.ID,
		origTarget: rec.TargetURL,
	}
	w.Content.Name = rec.Name
	switch t {
	case content.TypeURL:
		w.Content.URL = rec.TargetURL
	case content.TypeText:
		w.Content.Text = rec.TargetURL
	case content.TypeWiFi:
		w.Content.SSID = WiFiPlaceholder
	case content.TypeMenu:
		w.Content.MenuURL = rec.TargetURL
	}
	return w, nil
}

// Editing reports whether the wizard edits an existing record.
func (w *Wizard) Editing() bool { return w.EditID != "" }

// SelectType picks the content type. It only applies on the type step.
func (w *Wizard) SelectType(t content.Type) bool {
	if w.Step != StepType {
		return false
	}
	if _, ok := content.ParseType(string(t)); !ok {
		return false
	}
	w.Type = t
	return true
}

// CanAdvance reports whether Next would succeed.
func (w *Wizard) CanAdvance() bool {
	switch w.Step {
	case StepType:
		_, ok := content.ParseType(string(w.Type))
		return ok
	case StepContent:
		return w.Content.Valid(w.Type)
	case StepDesign:
		return true
	default:
		return false
	}
}

func (w *Wizard) Next() error {
	if !w.CanAdvance() {
		return ErrStepInvalid
	}
	w.Step++
	return nil
}

// Back moves one step back and stops at the type step.
func (w *Wizard) Back() {
	if w.Step > StepType {
		w.Step--
	}
	w.Err = ""
}

// Encoded is the string rendered into the QR code.
func (w *Wizard) Encoded() string { return w.Content.Encode(w.Type) }

// SetColor is the single write path for every colour control: hex text,
// native picker and swatches all land here.
func (w *Wizard) SetColor(field, value string) error {
	hex, ok := design.NormalizeHex(value)
	if !ok {
		return ErrInvalidColor
	}
	switch field {
	case FieldColor:
		w.Design.Color = hex
	case FieldBgColor:
		w.Design.BgColor = hex
	case FieldFrameColor:
		w.Design.FrameColor = hex
	case FieldFrameTextColor:
		w.Design.FrameTextColor = hex
	default:
		return ErrUnknownField
	}
	return nil
}

// SetFrameText stores the frame caption, truncated to the input limit.
func (w *Wizard) SetFrameText(s string) {
	r := []rune(s)
	if len(r) > design.MaxFrameText {
		r = r[:design.MaxFrameText]
	}
	w.Design.FrameText = string(r)
}

// Name is the record name sent to the backend.
func (w *Wizard) Name() string {
	if n := strings.TrimSpace(w.Content.Name); n != "" {
		return n
	}
	return strings.ToUpper(string(w.Type)) + " QR"
}

// Request builds the create payload.
func (w *Wizard) Request() api.CreateQRRequest {
	return api.CreateQRRequest{
		Name:      w.Name(),
		QRType:    string(w.Type),
		TargetURL: w.Content.TargetURL(w.Type),
		Design:    w.Design,
	}
}

// UpdateRequest builds the edit payload. Types whose content cannot be
// recovered from the record keep their stored target.
func (w *Wizard) UpdateRequest() api.UpdateQRRequest {
	target := w.origTarget
	switch w.Type {
	case content.TypeURL, content.TypeText, content.TypeMenu:
		target = w.Content.TargetURL(w.Type)
	}
	return api.UpdateQRRequest{
		Name:      strings.TrimSpace(w.Content.Name),
		TargetURL: target,
		Design:    w.Design,
	}
}

// Creator persists new codes.
type Creator interface {
	CreateQR(ctx context.Context, req api.CreateQRRequest) (*api.Record, error)
}

// Updater persists edits.
type Updater interface {
	UpdateQR(ctx context.Context, id api.ID, req api.UpdateQRRequest) error
}

// Save posts the code from a complete preview step. On failure the backend
// message is kept in Err and the wizard stays on the preview step. Once the
// code is created further calls do nothing.
func (w *Wizard) Save(ctx context.Context, c Creator) error {
	if w.Done() {
		return nil
	}
	if w.Step != StepPreview || !w.Content.Valid(w.Type) {
		return ErrStepInvalid
	}
	if w.Encoded() == "" {
		return ErrEmptyContent
	}
	w.Err = ""

	rec, err := c.CreateQR(ctx, w.Request())
	if err != nil {
		w.Err = api.Message(err, "Failed to create QR")
		return err
	}
	w.Created = rec
	return nil
}

// SaveEdit updates the record being edited. Types whose target comes from
// the content must hold valid content.
func (w *Wizard) SaveEdit(ctx context.Context, u Updater) error {
	if !w.Editing() {
		return ErrStepInvalid
	}
	switch w.Type {
	case content.TypeURL, content.TypeText, content.TypeMenu:
		if !w.Content.Valid(w.Type) {
			w.Err = "Content is incomplete"
			return ErrStepInvalid
		}
	}
	w.Err = ""
	if err := u.UpdateQR(ctx, w.EditID, w.UpdateRequest()); err != nil {
		w.Err = api.Message(err, "Failed to update QR")
		return err
	}
	return nil
}

// Done reports whether the flow reached its confirmation state.
func (w *Wizard) Done() bool { return w.Created != nil }
