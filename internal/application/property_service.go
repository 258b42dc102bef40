package application

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/property-marketplace/internal/domain/entity"
	"github.com/oksasatya/property-marketplace/internal/domain/errs"
	repo "github.com/oksasatya/property-marketplace/internal/domain/repository"
	"github.com/oksasatya/property-marketplace/pkg/helpers"
)

// PropertyRegistration is the transient listing payload. A nil location
// id (uuid.Nil) counts as missing.
type PropertyRegistration struct {
	Name     string
	Image    string
	Location uuid.UUID
	Price    float64
}

// PropertyService validates and stores listings. Transform is the pure
// validation engine; Save adds the uniqueness pre-check and persistence.
type PropertyService struct {
	Repo      repo.PropertyRepository
	Cities    repo.CityRepository
	Logger    *logrus.Logger
	ES        *elasticsearch.Client
	ESIndex   string
	GCS       *storage.Client
	GCSBucket string
	PageSize  int
	Retention time.Duration
	Now       func() time.Time
}

func NewPropertyService(props repo.PropertyRepository, cities repo.CityRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string, pageSize int, retention time.Duration) *PropertyService {
	return &PropertyService{
		Repo:      props,
		Cities:    cities,
		Logger:    logger,
		ES:        es,
		ESIndex:   esIndex,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		PageSize:  pageSize,
		Retention: retention,
		Now:       time.Now,
	}
}

// Transform validates a registration and builds the persistable listing.
// Rules short-circuit in order: name, image, location id, city existence,
// city price floor. The returned property is active and available with
// its creation date truncated to the start of the day; the id is left for
// the repository to assign.
func (s *PropertyService) Transform(ctx context.Context, in PropertyRegistration) (*entity.Property, error) {
	if in.Name == "" {
		return nil, errs.NullData("Not provided name")
	}
	if in.Image == "" {
		return nil, errs.NullData("Not provided image")
	}
	if in.Location == uuid.Nil {
		return nil, errs.NullData("Not provided valid location id")
	}

	city, err := s.Cities.GetByID(ctx, in.Location)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, errs.NotFound("Not found city with id " + in.Location.String())
		}
		return nil, err
	}

	if city.MinPrice != nil && in.Price <= *city.MinPrice {
		return nil, errs.BadRequest("Price must be > 2'000.000 in this city")
	}

	now := s.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return &entity.Property{
		Name:        in.Name,
		Image:       in.Image,
		Location:    *city,
		Price:       in.Price,
		DateCreated: day,
		Active:      true,
		Available:   true,
	}, nil
}

// Save validates, pre-checks the name against active+available rows, and
// persists. The pre-check is best effort: a concurrent insert can still
// surface the store's uniqueness violation, which comes back as Conflict.
func (s *PropertyService) Save(ctx context.Context, in PropertyRegistration) (*entity.Property, error) {
	p, err := s.Transform(ctx, in)
	if err != nil {
		return nil, err
	}

	taken, err := s.Repo.ExistsByName(ctx, p.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.Conflict("property name already taken")
	}

	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.indexProperty(ctx, p)
	return p, nil
}

// Find returns one page of active+available listings within the price
// bounds, plus the total match count.
func (s *PropertyService) Find(ctx context.Context, minPrice, maxPrice *float64, page int) ([]entity.Property, int64, error) {
	if page < 0 {
		page = 0
	}
	size := s.PageSize
	if size <= 0 {
		size = 10
	}
	return s.Repo.Find(ctx, minPrice, maxPrice, size, page*size)
}

// UploadImage stores a listing photo in GCS and points the property at
// the public URL.
func (s *PropertyService) UploadImage(ctx context.Context, id uuid.UUID, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errs.BadRequest("image storage not configured")
	}
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("properties", p.ID.String(), uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	if err := s.Repo.UpdateImage(ctx, p.ID, url); err != nil {
		return "", err
	}
	p.Image = url
	s.indexProperty(ctx, p)
	return url, nil
}

// DeleteStale removes inactive listings older than the retention window.
func (s *PropertyService) DeleteStale(ctx context.Context) (int64, error) {
	cutoff := s.Now().Add(-s.Retention)
	return s.Repo.DeleteStaleBefore(ctx, cutoff)
}

func (s *PropertyService) indexProperty(ctx context.Context, p *entity.Property) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"image":        p.Image,
		"city":         p.Location.Name,
		"price":        p.Price,
		"date_created": p.DateCreated.Format(time.RFC3339),
		"active":       p.Active,
		"available":    p.Available,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID.String(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("property_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("property_id", p.ID).Warn("es index response error")
	}
}

// Search performs a multi_match query over listing name and city.
func (s *PropertyService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "city"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
