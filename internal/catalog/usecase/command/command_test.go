package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mams-platform/mams/internal/catalog/domain"
)

// fakeTypeRepo stores equipment types in memory; IDs listed in referenced
// refuse deletion like a RESTRICT foreign key would
type fakeTypeRepo struct {
	types      map[uint]*domain.EquipmentType
	referenced map[uint]bool
	nextID     uint
}

func newFakeTypeRepo() *fakeTypeRepo {
	return &fakeTypeRepo{
		types:      make(map[uint]*domain.EquipmentType),
		referenced: make(map[uint]bool),
	}
}

func (r *fakeTypeRepo) Create(et *domain.EquipmentType) error {
	r.nextID++
	et.ID = r.nextID
	r.types[et.ID] = et
	return nil
}

func (r *fakeTypeRepo) FindByID(id uint) (*domain.EquipmentType, error) {
	et, exists := r.types[id]
	if !exists {
		return nil, domain.ErrTypeNotFound
	}
	return et, nil
}

func (r *fakeTypeRepo) FindAll(_, _ int) ([]domain.EquipmentType, error) {
	var out []domain.EquipmentType
	for _, et := range r.types {
		out = append(out, *et)
	}
	return out, nil
}

func (r *fakeTypeRepo) Update(et *domain.EquipmentType) error {
	if _, exists := r.types[et.ID]; !exists {
		return domain.ErrTypeNotFound
	}
	r.types[et.ID] = et
	return nil
}

func (r *fakeTypeRepo) Delete(id uint) error {
	if _, exists := r.types[id]; !exists {
		return domain.ErrTypeNotFound
	}
	if r.referenced[id] {
		return domain.ErrTypeReferenced
	}
	delete(r.types, id)
	return nil
}

func TestCreateEquipmentType(t *testing.T) {
	repo := newFakeTypeRepo()
	handler := NewCreateEquipmentTypeHandler(repo)

	et, err := handler.Handle(CreateEquipmentTypeCommand{
		Name:     "M4 Rifle",
		Category: "Weapon",
	})
	require.NoError(t, err)
	assert.NotZero(t, et.ID)

	_, err = handler.Handle(CreateEquipmentTypeCommand{Category: "Weapon"})
	assert.Error(t, err)

	_, err = handler.Handle(CreateEquipmentTypeCommand{Name: "5.56mm Rounds"})
	assert.Error(t, err)
}

func TestUpdateEquipmentType(t *testing.T) {
	repo := newFakeTypeRepo()
	create := NewCreateEquipmentTypeHandler(repo)
	update := NewUpdateEquipmentTypeHandler(repo)

	et, err := create.Handle(CreateEquipmentTypeCommand{Name: "Humvee", Category: "Vehicle"})
	require.NoError(t, err)

	updated, err := update.Handle(UpdateEquipmentTypeCommand{
		ID:          et.ID,
		Name:        "HMMWV",
		Category:    "Vehicle",
		Description: "utility vehicle",
	})
	require.NoError(t, err)
	assert.Equal(t, "HMMWV", updated.Name)

	_, err = update.Handle(UpdateEquipmentTypeCommand{ID: 99, Name: "Ghost", Category: "Vehicle"})
	assert.ErrorIs(t, err, domain.ErrTypeNotFound)
}

func TestDeleteEquipmentType(t *testing.T) {
	repo := newFakeTypeRepo()
	create := NewCreateEquipmentTypeHandler(repo)
	del := NewDeleteEquipmentTypeHandler(repo)

	et, err := create.Handle(CreateEquipmentTypeCommand{Name: "Radio", Category: "Communications"})
	require.NoError(t, err)

	require.NoError(t, del.Handle(DeleteEquipmentTypeCommand{ID: et.ID}))
	_, err = repo.FindByID(et.ID)
	assert.ErrorIs(t, err, domain.ErrTypeNotFound)
}

func TestDeleteEquipmentTypeReferenced(t *testing.T) {
	repo := newFakeTypeRepo()
	create := NewCreateEquipmentTypeHandler(repo)
	del := NewDeleteEquipmentTypeHandler(repo)

	et, err := create.Handle(CreateEquipmentTypeCommand{Name: "M4 Rifle", Category: "Weapon"})
	require.NoError(t, err)
	repo.referenced[et.ID] = true

	err = del.Handle(DeleteEquipmentTypeCommand{ID: et.ID})
	assert.ErrorIs(t, err, domain.ErrTypeReferenced)

	// The type survives the rejected delete
	_, err = repo.FindByID(et.ID)
	require.NoError(t, err)
}
