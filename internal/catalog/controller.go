// Package catalog owns the client-side copy of the item collection and
// keeps it in step with the backend.
//
// Work is split in two halves. Perform talks to the backend and never
// touches state, so it may run on any goroutine. Apply folds the outcome
// into state and must only be called from the single goroutine that owns
// the Controller (the UI event loop).
package catalog

import (
	"context"
	"errors"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/idilsaglam/catalog/internal/api"
	"github.com/idilsaglam/catalog/internal/model"
)

// User-facing error messages, one per operation.
const (
	MsgLoadFailed   = "Failed to load items. Please check if the item service is running."
	MsgCreateFailed = "Failed to create item"
	MsgUpdateFailed = "Failed to update item"
	MsgDeleteFailed = "Failed to delete item"
)

// DeletePrompt is the question put to the user before a delete.
const DeletePrompt = "Are you sure you want to delete this item?"

// ItemService is the backend surface the controller needs. *api.Client
// satisfies it.
type ItemService interface {
	ListItems(ctx context.Context) ([]model.Item, error)
	CreateItem(ctx context.Context, d model.Draft) (model.Item, error)
	UpdateItem(ctx context.Context, id model.ID, d model.Draft) (model.Item, error)
	DeleteItem(ctx context.Context, id model.ID) error
}

// Confirmer asks the user a yes/no question and blocks for the answer.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Op names a controller operation.
type Op int

const (
	OpLoad Op = iota
	OpCreate
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpLoad:
		return "load"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// Request describes one backend call. Confirmed must be set for OpDelete.
type Request struct {
	Op        Op
	ID        model.ID
	Draft     model.Draft
	Confirmed bool
}

// Outcome is the result of Perform.
type Outcome struct {
	Request Request
	Items   []model.Item // OpLoad
	Item    model.Item   // OpCreate, OpUpdate
	Err     error
	Skipped bool // no call was made
}

// State is a snapshot of everything the views render.
type State struct {
	Items    []model.Item
	Loading  bool
	Err      string
	FormOpen bool
	Editing  map[model.ID]bool
}

// Controller is the single writer of State.
type Controller struct {
	svc   ItemService
	log   *zap.Logger
	state State
}

// New returns a controller in the initial Loading state with an empty
// collection.
func New(svc ItemService, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		svc: svc,
		log: log,
		state: State{
			Items:   []model.Item{},
			Loading: true,
			Editing: map[model.ID]bool{},
		},
	}
}

// State returns a copy of the current state. The Items slice is shared but
// never modified in place.
func (c *Controller) State() State {
	s := c.state
	s.Editing = maps.Clone(c.state.Editing)
	return s
}

// Items returns the current collection.
func (c *Controller) Items() []model.Item { return c.state.Items }

// Ready reports whether the initial load has finished.
func (c *Controller) Ready() bool { return !c.state.Loading }

// ToggleForm flips the creation form's visibility.
func (c *Controller) ToggleForm() { c.state.FormOpen = !c.state.FormOpen }

// CloseForm hides the creation form.
func (c *Controller) CloseForm() { c.state.FormOpen = false }

// SetEditing sets the edit flag of one record. Several records may be in
// edit mode at once.
func (c *Controller) SetEditing(id model.ID, on bool) {
	if on {
		c.state.Editing[id] = true
		return
	}
	delete(c.state.Editing, id)
}

// Editing reports whether the record is in edit mode.
func (c *Controller) Editing(id model.ID) bool { return c.state.Editing[id] }

// DismissError clears the current error message.
func (c *Controller) DismissError() { c.state.Err = "" }

// Begin applies the state changes that precede a request.
func (c *Controller) Begin(req Request) {
	if req.Op == OpLoad {
		c.state.Err = ""
	}
}

// Perform makes the backend call for req. It reads no controller state.
func (c *Controller) Perform(ctx context.Context, req Request) Outcome {
	out := Outcome{Request: req}
	switch req.Op {
	case OpLoad:
		out.Items, out.Err = c.svc.ListItems(ctx)
	case OpCreate:
		out.Item, out.Err = c.svc.CreateItem(ctx, req.Draft)
	case OpUpdate:
		out.Item, out.Err = c.svc.UpdateItem(ctx, req.ID, req.Draft)
	case OpDelete:
		if !req.Confirmed {
			out.Skipped = true
			return out
		}
		out.Err = c.svc.DeleteItem(ctx, req.ID)
	default:
		out.Skipped = true
	}
	return out
}

// Apply folds an outcome into state. Every successful mutation replaces
// Items with a new slice holding exactly one change.
func (c *Controller) Apply(o Outcome) {
	if o.Skipped {
		return
	}
	req := o.Request
	if req.Op == OpLoad {
		c.state.Loading = false
	}
	if o.Err != nil {
		c.fail(req, o.Err)
		return
	}

	switch req.Op {
	case OpLoad:
		items := o.Items
		if items == nil {
			items = []model.Item{}
		}
		c.state.Items = slices.Clone(items)
	case OpCreate:
		if i := indexOf(c.state.Items, o.Item.ID); i >= 0 {
			c.log.Warn("created item already present, replacing", zap.String("id", o.Item.ID.String()))
			c.state.Items = replaceAt(c.state.Items, i, o.Item)
		} else {
			c.state.Items = append(slices.Clip(c.state.Items), o.Item)
		}
		c.state.FormOpen = false
	case OpUpdate:
		if i := indexOf(c.state.Items, req.ID); i >= 0 {
			c.state.Items = replaceAt(c.state.Items, i, o.Item)
		}
	case OpDelete:
		if i := indexOf(c.state.Items, req.ID); i >= 0 {
			c.state.Items = slices.Delete(slices.Clone(c.state.Items), i, i+1)
		}
		delete(c.state.Editing, req.ID)
	}
}

func (c *Controller) fail(req Request, err error) {
	c.state.Err = Message(req.Op)

	fields := []zap.Field{
		zap.String("op", req.Op.String()),
		zap.Error(err),
	}
	if req.ID != "" {
		fields = append(fields, zap.String("id", req.ID.String()))
	}
	var te *api.TransportError
	var ne *api.NetworkError
	switch {
	case errors.As(err, &te):
		fields = append(fields, zap.String("kind", "transport"), zap.Int("status", te.StatusCode))
	case errors.As(err, &ne):
		fields = append(fields, zap.String("kind", "network"))
	}
	c.log.Error("operation failed", fields...)
}

// Message returns the user-facing failure text for op.
func Message(op Op) string {
	switch op {
	case OpLoad:
		return MsgLoadFailed
	case OpCreate:
		return MsgCreateFailed
	case OpUpdate:
		return MsgUpdateFailed
	case OpDelete:
		return MsgDeleteFailed
	}
	return "Operation failed"
}

// Load fetches the full collection and replaces the local copy.
func (c *Controller) Load(ctx context.Context) error {
	req := Request{Op: OpLoad}
	c.Begin(req)
	o := c.Perform(ctx, req)
	c.Apply(o)
	return o.Err
}

// Create validates the draft, then posts it. Validation failures make no
// call and leave state alone.
func (c *Controller) Create(ctx context.Context, d model.Draft) (model.Item, error) {
	if err := d.Validate(); err != nil {
		return model.Item{}, err
	}
	o := c.run(ctx, Request{Op: OpCreate, Draft: d})
	return o.Item, o.Err
}

// Update validates the draft, then replaces the record with the server's
// version.
func (c *Controller) Update(ctx context.Context, id model.ID, d model.Draft) (model.Item, error) {
	if err := d.Validate(); err != nil {
		return model.Item{}, err
	}
	o := c.run(ctx, Request{Op: OpUpdate, ID: id, Draft: d})
	return o.Item, o.Err
}

// Delete asks confirm first; declining returns (false, nil) without any
// call.
func (c *Controller) Delete(ctx context.Context, id model.ID, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm.Confirm(DeletePrompt) {
		return false, nil
	}
	o := c.run(ctx, Request{Op: OpDelete, ID: id, Confirmed: true})
	return o.Err == nil, o.Err
}

func (c *Controller) run(ctx context.Context, req Request) Outcome {
	c.Begin(req)
	o := c.Perform(ctx, req)
	c.Apply(o)
	return o
}

func indexOf(items []model.Item, id model.ID) int {
	return slices.IndexFunc(items, func(it model.Item) bool { return it.ID == id })
}

func replaceAt(items []model.Item, i int, it model.Item) []model.Item {
	out := slices.Clone(items)
	out[i] = it
	return out
}
