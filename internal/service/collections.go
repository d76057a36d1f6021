package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/chefcommunity/client/internal/router"
	"github.com/chefcommunity/client/internal/types"
)

// CollectionMode chooses between creating a collection and reusing one.
type CollectionMode string

const (
	ModeNew      CollectionMode = "new"
	ModeExisting CollectionMode = "existing"
)

var (
	ErrEmptyName      = errors.New("collection name is required")
	ErrNoCollection   = errors.New("select one of your collections")
	ErrModeOffered    = errors.New("no existing collections to choose from")
	ErrNotInSelection = errors.New("recipe is not in the open collection")
)

// PartialAddError reports a save pipeline that stopped at a failing add.
// Recipes in Added stay in the collection.
type PartialAddError struct {
	Collection types.Collection
	Added      []int64
	Failed     int64
	Total      int
	Err        error
}

func (e *PartialAddError) Error() string {
	return fmt.Sprintf("se añadieron %d de %d recetas a %q; falló la receta %d: %v",
		len(e.Added), e.Total, e.Collection.Name, e.Failed, e.Err)
}

func (e *PartialAddError) Unwrap() error { return e.Err }

// CollectionModal holds the "add to collection" form.
type CollectionModal struct {
	existing []types.Collection

	mu          sync.Mutex
	mode        CollectionMode
	name        string
	description string
	chosen      int64
	err         string
}

func newCollectionModal(existing []types.Collection) *CollectionModal {
	return &CollectionModal{existing: existing, mode: ModeNew}
}

// Modes lists the modes offered: existing only when the owner already has
// collections.
func (m *CollectionModal) Modes() []CollectionMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.existing) == 0 {
		return []CollectionMode{ModeNew}
	}
	return []CollectionMode{ModeNew, ModeExisting}
}

// Existing lists the collections that can be chosen.
func (m *CollectionModal) Existing() []types.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.Collection(nil), m.existing...)
}

func (m *CollectionModal) SetMode(mode CollectionMode) error {
	if mode != ModeNew && mode != ModeExisting {
		return fmt.Errorf("unknown mode %q", mode)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if mode == ModeExisting && len(m.existing) == 0 {
		return ErrModeOffered
	}
	m.mode = mode
	return nil
}

func (m *CollectionModal) Mode() CollectionMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func (m *CollectionModal) SetName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.name = name
}

func (m *CollectionModal) SetDescription(desc string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.description = desc
}

// Choose selects an existing collection of the owner.
func (m *CollectionModal) Choose(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.existing {
		if c.ID == id {
			m.chosen = id
			return nil
		}
	}
	return ErrNoCollection
}

// Chosen is the id of the selected existing collection, or 0.
func (m *CollectionModal) Chosen() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chosen
}

// adopt makes a collection created by a failed save the target of the next
// attempt.
func (m *CollectionModal) adopt(c types.Collection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := false
	for i := range m.existing {
		if m.existing[i].ID == c.ID {
			m.existing[i] = c
			found = true
		}
	}
	if !found {
		m.existing = append(m.existing, c)
	}
	m.mode = ModeExisting
	m.chosen = c.ID
}

func (m *CollectionModal) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *CollectionModal) setErr(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = msg
}

// target validates the form and returns what the pipeline needs.
func (m *CollectionModal) target() (mode CollectionMode, req types.CollectionRequest, existing *types.Collection, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.mode {
	case ModeNew:
		name := strings.TrimSpace(m.name)
		if name == "" {
			m.err = "El nombre de la colección es obligatorio"
			return m.mode, req, nil, ErrEmptyName
		}
		return m.mode, types.CollectionRequest{Name: name, Description: strings.TrimSpace(m.description)}, nil, nil
	default:
		for i := range m.existing {
			if m.existing[i].ID == m.chosen {
				c := m.existing[i]
				return m.mode, req, &c, nil
			}
		}
		m.err = "Selecciona una colección"
		return m.mode, req, nil, ErrNoCollection
	}
}

// --- profile integration ---

// Collections lists the collections of the viewed profile.
func (p *Profile) Collections() []types.Collection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]types.Collection(nil), p.data.Collections...)
}

// OpenCollectionModal starts the save flow for the current selection.
func (p *Profile) OpenCollectionModal() (*CollectionModal, error) {
	if !p.IsOwner() {
		return nil, ErrNotOwner
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.selected) == 0 {
		return nil, ErrNothingSelected
	}
	p.modal = newCollectionModal(append([]types.Collection(nil), p.data.Collections...))
	return p.modal, nil
}

// Modal returns the open collection modal, if any.
func (p *Profile) Modal() *CollectionModal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.modal
}

func (p *Profile) CloseCollectionModal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modal = nil
}

// SaveCollection runs the save pipeline: create the collection in new
// mode, add each selected recipe in order, reload the aggregate, reset the
// modal and selection, switch to the collections tab and open a success
// notice. It stops at the first failing add and returns a
// *PartialAddError. Earlier adds are not rolled back: the modal switches to
// the collection already created and the added recipes leave the
// selection, so saving again resumes at the failed recipe.
func (p *Profile) SaveCollection(ctx context.Context) (*types.Collection, error) {
	if !p.IsOwner() {
		return nil, ErrNotOwner
	}
	p.mu.Lock()
	modal := p.modal
	selected := append([]int64(nil), p.selected...)
	p.mu.Unlock()
	if modal == nil {
		return nil, ErrDialogClosed
	}
	if len(selected) == 0 {
		return nil, ErrNothingSelected
	}

	mode, req, target, err := modal.target()
	if err != nil {
		return nil, err
	}

	if mode == ModeNew {
		created, err := p.api.CreateCollection(ctx, p.token, req)
		if err != nil {
			p.logger.Warn("collection create failed", zap.String("name", req.Name), zap.Error(err))
			modal.setErr(MsgCollectionFailed + ": " + inlineMessage(err, ""))
			return nil, err
		}
		target = created
	}

	result := *target
	added := make([]int64, 0, len(selected))
	for _, id := range selected {
		updated, err := p.api.AddToCollection(ctx, p.token, target.ID, id)
		if err != nil {
			perr := &PartialAddError{
				Collection: result,
				Added:      added,
				Failed:     id,
				Total:      len(selected),
				Err:        err,
			}
			p.logger.Warn("collection add failed",
				zap.Int64("collection_id", target.ID),
				zap.Int64("recipe_id", id),
				zap.Int("added", len(added)),
				zap.Error(err))
			modal.adopt(result)
			p.mu.Lock()
			for _, done := range added {
				p.removeSelected(done)
			}
			p.mu.Unlock()
			modal.setErr(inlineMessage(perr, ""))
			return nil, perr
		}
		added = append(added, id)
		if updated != nil {
			result = *updated
		}
	}

	agg, reloadErr := p.api.GetProfile(ctx, p.token, p.userID)
	if reloadErr != nil {
		p.logger.Warn("profile reload after save failed", zap.Error(reloadErr))
	}
	if !p.lease.Alive() {
		return &result, nil
	}

	p.mu.Lock()
	if agg != nil {
		p.data = *agg
		p.actionErr = ""
	} else {
		upsertCollection(&p.data, result)
		p.actionErr = MsgReloadFailed + ": " + inlineMessage(reloadErr, "")
	}
	p.modal = nil
	p.selecting = false
	p.selected = nil
	p.tab = router.TabCollections
	p.openCollection = nil
	p.dialog = NewConfirmDialog(ConfirmOptions{
		Title:        "¡Éxito!",
		Message:      fmt.Sprintf("Recetas añadidas a \"%s\" correctamente.", result.Name),
		ConfirmLabel: "Genial",
		Variant:      VariantSuccess,
	})
	p.mu.Unlock()
	return &result, nil
}

// OpenCollection shows the detail view of c.
func (p *Profile) OpenCollection(c types.Collection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.openCollection = &c
}

// CloseCollection goes back to the collection list.
func (p *Profile) CloseCollection() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.openCollection = nil
}

// OpenedCollection returns the collection in detail view, or nil.
func (p *Profile) OpenedCollection() *types.Collection {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.openCollection == nil {
		return nil
	}
	c := *p.openCollection
	c.Recipes = append([]types.Recipe(nil), p.openCollection.Recipes...)
	return &c
}

// RequestRemoveFromCollection returns the confirmation that removes a
// recipe from the open collection. On success the recipe is dropped
// locally without reloading the aggregate.
func (p *Profile) RequestRemoveFromCollection(recipeID int64) (*ConfirmDialog, error) {
	if !p.IsOwner() {
		return nil, ErrNotOwner
	}
	open := p.OpenedCollection()
	if open == nil {
		return nil, ErrNoCollection
	}
	found := false
	for _, r := range open.Recipes {
		if r.ID == recipeID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotInSelection
	}

	collectionID := open.ID
	d := NewConfirmDialog(ConfirmOptions{
		Message: "¿Quitar receta de esta colección?",
		Variant: VariantDanger,
		OnConfirm: func(ctx context.Context) error {
			if _, err := p.api.RemoveFromCollection(ctx, p.token, collectionID, recipeID); err != nil {
				return err
			}
			if !p.lease.Alive() {
				return nil
			}
			p.mu.Lock()
			defer p.mu.Unlock()
			if p.openCollection != nil && p.openCollection.ID == collectionID {
				dropRecipe(p.openCollection, recipeID)
			}
			for i := range p.data.Collections {
				if p.data.Collections[i].ID == collectionID {
					dropRecipe(&p.data.Collections[i], recipeID)
				}
			}
			return nil
		},
	})
	p.setDialog(d)
	return d, nil
}

// upsertCollection patches c into the aggregate when it could not be
// reloaded.
func upsertCollection(agg *types.ProfileAggregate, c types.Collection) {
	for i := range agg.Collections {
		if agg.Collections[i].ID == c.ID {
			agg.Collections[i] = c
			return
		}
	}
	agg.Collections = append(agg.Collections, c)
}

func dropRecipe(c *types.Collection, recipeID int64) {
	kept := make([]types.Recipe, 0, len(c.Recipes))
	for _, r := range c.Recipes {
		if r.ID != recipeID {
			kept = append(kept, r)
		}
	}
	if len(kept) < len(c.Recipes) && c.RecipeCount > 0 {
		c.RecipeCount--
	}
	c.Recipes = kept
}
