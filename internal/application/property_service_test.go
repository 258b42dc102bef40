package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/property-marketplace/internal/domain/entity"
	"github.com/oksasatya/property-marketplace/internal/domain/errs"
)

var (
	bogotaID   = uuid.MustParse("a4b2c9d7-258e-4f2f-a1ad-1c7f5f2a9d75")
	medellinID = uuid.MustParse("e9c1a570-dbe4-4a2e-a71e-2fd5a7b7f123")
)

func floor(v float64) *float64 { return &v }

type fakeCityRepo struct {
	cities map[uuid.UUID]*entity.City
}

func newFakeCityRepo() *fakeCityRepo {
	return &fakeCityRepo{cities: map[uuid.UUID]*entity.City{
		bogotaID:   {ID: bogotaID, Name: "Bogota", MinPrice: floor(2000000)},
		medellinID: {ID: medellinID, Name: "Medellin"},
	}}
}

func (f *fakeCityRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.City, error) {
	c, ok := f.cities[id]
	if !ok {
		return nil, errs.NotFound("city not found")
	}
	cp := *c
	return &cp, nil
}

type fakePropertyRepo struct {
	props map[uuid.UUID]*entity.Property

	lastFindMin    *float64
	lastFindMax    *float64
	lastFindLimit  int
	lastFindOffset int
	lastCutoff     time.Time
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{props: map[uuid.UUID]*entity.Property{}}
}

func (f *fakePropertyRepo) Create(_ context.Context, p *entity.Property) error {
	for _, existing := range f.props {
		if existing.Name == p.Name && existing.Active && existing.Available {
			return errs.Conflict("property name already taken")
		}
	}
	p.ID = uuid.New()
	cp := *p
	f.props[p.ID] = &cp
	return nil
}

func (f *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Property, error) {
	p, ok := f.props[id]
	if !ok {
		return nil, errs.NotFound("property not found")
	}
	cp := *p
	return &cp, nil
}

func (f *fakePropertyRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, p := range f.props {
		if p.Name == name && p.Active && p.Available {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePropertyRepo) Find(_ context.Context, minPrice, maxPrice *float64, limit, offset int) ([]entity.Property, int64, error) {
	f.lastFindMin, f.lastFindMax = minPrice, maxPrice
	f.lastFindLimit, f.lastFindOffset = limit, offset
	out := make([]entity.Property, 0, len(f.props))
	for _, p := range f.props {
		if !p.Active || !p.Available {
			continue
		}
		if minPrice != nil && p.Price < *minPrice {
			continue
		}
		if maxPrice != nil && p.Price > *maxPrice {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePropertyRepo) UpdateImage(_ context.Context, id uuid.UUID, image string) error {
	p, ok := f.props[id]
	if !ok {
		return errs.NotFound("property not found")
	}
	p.Image = image
	return nil
}

func (f *fakePropertyRepo) DeleteStaleBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.lastCutoff = cutoff
	var n int64
	for id, p := range f.props {
		if !p.Active && p.DateCreated.Before(cutoff) {
			delete(f.props, id)
			n++
		}
	}
	return n, nil
}

func newPropertyService(props *fakePropertyRepo, cities *fakeCityRepo) *PropertyService {
	return NewPropertyService(props, cities, nil, nil, "", nil, "", 10, 720*time.Hour)
}

func validListing() PropertyRegistration {
	return PropertyRegistration{
		Name:     "Casa Chapinero",
		Image:    "https://img.example.com/casa.jpg",
		Location: bogotaID,
		Price:    2500000,
	}
}

func TestTransformValidationOrder(t *testing.T) {
	missingCity := uuid.New()

	tests := []struct {
		name    string
		mutate  func(*PropertyRegistration)
		kind    errs.Kind
		message string
	}{
		{
			name:    "missing name",
			mutate:  func(r *PropertyRegistration) { r.Name = "" },
			kind:    errs.KindNullData,
			message: "Not provided name",
		},
		{
			name: "missing name wins over missing image",
			mutate: func(r *PropertyRegistration) {
				r.Name = ""
				r.Image = ""
			},
			kind:    errs.KindNullData,
			message: "Not provided name",
		},
		{
			name:    "missing image",
			mutate:  func(r *PropertyRegistration) { r.Image = "" },
			kind:    errs.KindNullData,
			message: "Not provided image",
		},
		{
			name:    "missing location id",
			mutate:  func(r *PropertyRegistration) { r.Location = uuid.Nil },
			kind:    errs.KindNullData,
			message: "Not provided valid location id",
		},
		{
			name:    "unknown city",
			mutate:  func(r *PropertyRegistration) { r.Location = missingCity },
			kind:    errs.KindNotFound,
			message: "Not found city with id " + missingCity.String(),
		},
		{
			name:    "price below floor",
			mutate:  func(r *PropertyRegistration) { r.Price = 1000000 },
			kind:    errs.KindBadRequest,
			message: "Price must be > 2'000.000 in this city",
		},
		{
			name:    "price equal to floor still fails",
			mutate:  func(r *PropertyRegistration) { r.Price = 2000000 },
			kind:    errs.KindBadRequest,
			message: "Price must be > 2'000.000 in this city",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newPropertyService(newFakePropertyRepo(), newFakeCityRepo())
			in := validListing()
			tc.mutate(&in)

			_, err := svc.Transform(context.Background(), in)
			require.Error(t, err)
			assert.True(t, errs.IsKind(err, tc.kind), "got %v", err)
			assert.Equal(t, tc.message, err.Error())
		})
	}
}

func TestTransformAboveFloorSucceeds(t *testing.T) {
	svc := newPropertyService(newFakePropertyRepo(), newFakeCityRepo())
	in := validListing()
	in.Price = 2000001

	p, err := svc.Transform(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Bogota", p.Location.Name)
	assert.Equal(t, float64(2000001), p.Price)
	assert.True(t, p.Active)
	assert.True(t, p.Available)
}

func TestTransformNoFloorCity(t *testing.T) {
	svc := newPropertyService(newFakePropertyRepo(), newFakeCityRepo())
	in := validListing()
	in.Location = medellinID
	in.Price = 1

	p, err := svc.Transform(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Medellin", p.Location.Name)
}

func TestTransformTruncatesDateToMidnight(t *testing.T) {
	svc := newPropertyService(newFakePropertyRepo(), newFakeCityRepo())
	loc := time.FixedZone("UTC-5", -5*3600)
	svc.Now = func() time.Time { return time.Date(2026, 3, 14, 17, 45, 9, 123, loc) }

	p, err := svc.Transform(context.Background(), validListing())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, loc), p.DateCreated)
}

func TestSave(t *testing.T) {
	props := newFakePropertyRepo()
	svc := newPropertyService(props, newFakeCityRepo())

	p, err := svc.Save(context.Background(), validListing())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	require.Len(t, props.props, 1)

	_, err = svc.Save(context.Background(), validListing())
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindConflict))
	assert.Equal(t, "property name already taken", err.Error())
}

func TestFindPaging(t *testing.T) {
	props := newFakePropertyRepo()
	svc := newPropertyService(props, newFakeCityRepo())
	svc.PageSize = 5

	min := 100.0
	_, _, err := svc.Find(context.Background(), &min, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, &min, props.lastFindMin)
	assert.Nil(t, props.lastFindMax)
	assert.Equal(t, 5, props.lastFindLimit)
	assert.Equal(t, 15, props.lastFindOffset)

	// negative pages clamp to the first page
	_, _, err = svc.Find(context.Background(), nil, nil, -2)
	require.NoError(t, err)
	assert.Equal(t, 0, props.lastFindOffset)
}

func TestDeleteStale(t *testing.T) {
	props := newFakePropertyRepo()
	svc := newPropertyService(props, newFakeCityRepo())
	svc.Retention = 48 * time.Hour
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	old := &entity.Property{ID: uuid.New(), Name: "old", Active: false, DateCreated: now.Add(-72 * time.Hour)}
	fresh := &entity.Property{ID: uuid.New(), Name: "fresh", Active: false, DateCreated: now.Add(-24 * time.Hour)}
	live := &entity.Property{ID: uuid.New(), Name: "live", Active: true, Available: true, DateCreated: now.Add(-72 * time.Hour)}
	props.props[old.ID] = old
	props.props[fresh.ID] = fresh
	props.props[live.ID] = live

	n, err := svc.DeleteStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, now.Add(-48*time.Hour), props.lastCutoff)
	assert.NotContains(t, props.props, old.ID)
	assert.Contains(t, props.props, fresh.ID)
	assert.Contains(t, props.props, live.ID)
}
