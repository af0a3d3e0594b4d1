package workouts

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/2beens/gymlog/internal/storage"
	"github.com/2beens/gymlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Catalog maps a body part to its exercise names, in insertion order.
type Catalog map[string][]string

var defaultBodyParts = []string{"胸", "背中", "足", "肩", "腕"}

func DefaultCatalog() Catalog {
	return Catalog{
		"胸":  {"ベンチプレス", "ダンベルフライ"},
		"背中": {"懸垂", "デッドリフト"},
		"足":  {"スクワット", "レッグプレス"},
		"肩":  {"ショルダープレス", "サイドレイズ"},
		"腕":  {"アームカール", "トライセプスプレスダウン"},
	}
}

// Categories lists the default body parts first (those present), then the
// rest sorted.
func (c Catalog) Categories() []string {
	categories := make([]string, 0, len(c))
	for _, bp := range defaultBodyParts {
		if _, ok := c[bp]; ok {
			categories = append(categories, bp)
		}
	}

	var extra []string
	for bp := range c {
		if !slices.Contains(defaultBodyParts, bp) {
			extra = append(extra, bp)
		}
	}
	sort.Strings(extra)

	return append(categories, extra...)
}

func (c Catalog) Has(bodyPart string) bool {
	_, ok := c[bodyPart]
	return ok
}

func (c Catalog) Clone() Catalog {
	clone := make(Catalog, len(c))
	for bp, names := range c {
		clone[bp] = append([]string{}, names...)
	}
	return clone
}

type CatalogStore struct {
	adapter *storage.Adapter
}

func NewCatalogStore(adapter *storage.Adapter) *CatalogStore {
	return &CatalogStore{
		adapter: adapter,
	}
}

func (s *CatalogStore) Load(ctx context.Context) (Catalog, error) {
	catalog, err := storage.Load(ctx, s.adapter, storage.ExercisesKey, DefaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("load exercise catalog: %w", err)
	}
	return catalog, nil
}

func (s *CatalogStore) Categories(ctx context.Context) ([]string, error) {
	catalog, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Categories(), nil
}

func (s *CatalogStore) ListExercises(ctx context.Context, bodyPart string) ([]string, error) {
	catalog, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	names, ok := catalog[bodyPart]
	if !ok {
		return nil, fmt.Errorf("%w: [%s]", ErrUnknownBodyPart, bodyPart)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// AddExercise appends name to the body part's list and persists the catalog.
// Whitespace-only names are ignored (added == false). Duplicates are kept.
func (s *CatalogStore) AddExercise(ctx context.Context, bodyPart, name string) (added bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog.add_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("body_part", bodyPart))

	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	if strings.TrimSpace(bodyPart) == "" {
		return false, fmt.Errorf("%w: empty", ErrUnknownBodyPart)
	}

	catalog, err := s.Load(ctx)
	if err != nil {
		return false, err
	}

	if !catalog.Has(bodyPart) {
		log.Debugf("catalog, new body part [%s]", bodyPart)
	}
	catalog[bodyPart] = append(catalog[bodyPart], name)

	if err := storage.Save(ctx, s.adapter, storage.ExercisesKey, catalog); err != nil {
		return false, fmt.Errorf("save exercise catalog: %w", err)
	}

	log.Debugf("catalog, added exercise [%s] to [%s]", name, bodyPart)
	return true, nil
}
