package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chefcommunity/client/internal/types"
)

// Variant styles a confirmation dialog.
type Variant string

const (
	VariantDanger  Variant = "danger"
	VariantSuccess Variant = "success"
	VariantInfo    Variant = "info"
)

var (
	ErrDialogClosed = errors.New("dialog is closed")
	ErrNoDate       = errors.New("no date selected")
	ErrPastDate     = errors.New("date is in the past")
	ErrMealTime     = errors.New("unknown meal time")
)

// ConfirmOptions configures a ConfirmDialog. Empty labels take defaults.
type ConfirmOptions struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	Variant      Variant
	OnConfirm    func(ctx context.Context) error
}

// ConfirmDialog gates an action behind an explicit confirmation.
type ConfirmDialog struct {
	opts ConfirmOptions

	mu   sync.Mutex
	open bool
	busy bool
	err  string
}

// NewConfirmDialog returns an open dialog.
func NewConfirmDialog(opts ConfirmOptions) *ConfirmDialog {
	if opts.Title == "" {
		opts.Title = "Confirmación Requerida"
	}
	if opts.ConfirmLabel == "" {
		opts.ConfirmLabel = "Confirmar"
	}
	if opts.CancelLabel == "" {
		opts.CancelLabel = "Cancelar"
	}
	if opts.Variant == "" {
		opts.Variant = VariantDanger
	}
	return &ConfirmDialog{opts: opts, open: true}
}

func (d *ConfirmDialog) Title() string        { return d.opts.Title }
func (d *ConfirmDialog) Message() string      { return d.opts.Message }
func (d *ConfirmDialog) ConfirmLabel() string { return d.opts.ConfirmLabel }
func (d *ConfirmDialog) CancelLabel() string  { return d.opts.CancelLabel }
func (d *ConfirmDialog) Variant() Variant     { return d.opts.Variant }

// ShowCancel is false for success dialogs, which only acknowledge.
func (d *ConfirmDialog) ShowCancel() bool {
	return d.opts.Variant != VariantSuccess
}

func (d *ConfirmDialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Err is the inline message of the last failed confirmation.
func (d *ConfirmDialog) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Confirm runs the action. Success dialogs close once it has run; the
// others close when it succeeds and stay open showing the error when it
// fails.
func (d *ConfirmDialog) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if !d.open || d.busy {
		d.mu.Unlock()
		return ErrDialogClosed
	}
	d.busy = true
	d.err = ""
	d.mu.Unlock()

	var err error
	if d.opts.OnConfirm != nil {
		err = d.opts.OnConfirm(ctx)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.busy = false
	if err != nil && d.opts.Variant != VariantSuccess {
		d.err = inlineMessage(err, "")
		return err
	}
	d.open = false
	return err
}

func (d *ConfirmDialog) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
}

// MealPlanAction schedules a recipe.
type MealPlanAction func(ctx context.Context, req types.MealPlanRequest) error

// MealPlanDialog picks a date and a meal time for a recipe.
type MealPlanDialog struct {
	recipeID int64
	action   MealPlanAction
	now      func() time.Time

	mu       sync.Mutex
	open     bool
	date     string
	mealTime types.MealTime
	err      string
}

func NewMealPlanDialog(recipeID int64, action MealPlanAction) *MealPlanDialog {
	return &MealPlanDialog{
		recipeID: recipeID,
		action:   action,
		now:      time.Now,
		open:     true,
		mealTime: types.DefaultMealTime,
	}
}

// MinDate is today in YYYY-MM-DD, the earliest date that can be planned.
func (d *MealPlanDialog) MinDate() string {
	return d.now().Format(types.DateLayout)
}

// SetDate accepts a YYYY-MM-DD date not before today.
func (d *MealPlanDialog) SetDate(date string) error {
	parsed, err := time.Parse(types.DateLayout, date)
	if err != nil {
		return err
	}
	if parsed.Format(types.DateLayout) < d.MinDate() {
		return ErrPastDate
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.date = date
	return nil
}

func (d *MealPlanDialog) SetMealTime(m types.MealTime) error {
	if !m.Valid() {
		return ErrMealTime
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mealTime = m
	return nil
}

func (d *MealPlanDialog) Date() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.date
}

func (d *MealPlanDialog) MealTime() types.MealTime {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mealTime
}

func (d *MealPlanDialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *MealPlanDialog) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Submit runs the action. Without a date nothing is sent. A failing action
// keeps the dialog open with its message.
func (d *MealPlanDialog) Submit(ctx context.Context) error {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return ErrDialogClosed
	}
	if d.date == "" {
		d.err = MsgPickDate
		d.mu.Unlock()
		return ErrNoDate
	}
	req := types.MealPlanRequest{RecipeID: d.recipeID, PlanDate: d.date, MealTime: d.mealTime}
	d.err = ""
	d.mu.Unlock()

	err := d.action(ctx, req)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.err = inlineMessage(err, MsgPlanFailed)
		return err
	}
	d.open = false
	return nil
}

func (d *MealPlanDialog) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
}
