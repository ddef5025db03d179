package batch

import (
	"context"
	"fmt"
	"sort"

	"github.com/apflab/batchplan/internal/logging"
	"github.com/apflab/batchplan/internal/sample"
)

// Tier names, in cascade order. TierPartial labels the trailing short batch.
const (
	TierFamilyGenus = "family_genus"
	TierFamily      = "family"
	TierGlobal      = "global"
	TierPartial     = "partial"
)

// groupKey identifies a group within one tier. Coarser tiers leave the finer
// fields empty. Empty Family or Genus cells form a group of their own.
type groupKey struct {
	family string
	genus  string
}

type keyFunc func(sample.Record) groupKey

// groupOrder decides the order in which a tier visits its groups.
type groupOrder int

const (
	// bySize visits the largest group first; equal sizes keep first-appearance order.
	bySize groupOrder = iota
	// byKey visits groups in ascending key order, family then genus, byte-wise.
	byKey
)

// tier is one stage of the grouping cascade.
type tier struct {
	name  string
	key   keyFunc
	order groupOrder
}

type group struct {
	key     groupKey
	records []sample.Record
}

// cascade returns the tiers in the order they run.
func cascade(familyCol, genusCol int) []tier {
	return []tier{
		{
			name:  TierFamilyGenus,
			order: bySize,
			key: func(r sample.Record) groupKey {
				return groupKey{family: r.Value(familyCol), genus: r.Value(genusCol)}
			},
		},
		{
			name:  TierFamily,
			order: byKey,
			key: func(r sample.Record) groupKey {
				return groupKey{family: r.Value(familyCol)}
			},
		},
		{
			name:  TierGlobal,
			order: byKey,
			key:   func(sample.Record) groupKey { return groupKey{} },
		},
	}
}

// partition groups records by key and orders the groups as requested.
// Records keep their relative order inside a group.
func partition(records []sample.Record, key keyFunc, order groupOrder) []group {
	pos := make(map[groupKey]int)
	var groups []group
	for _, r := range records {
		k := key(r)
		i, ok := pos[k]
		if !ok {
			i = len(groups)
			pos[k] = i
			groups = append(groups, group{key: k})
		}
		groups[i].records = append(groups[i].records, r)
	}

	switch order {
	case bySize:
		sort.SliceStable(groups, func(i, j int) bool {
			return len(groups[i].records) > len(groups[j].records)
		})
	case byKey:
		sort.SliceStable(groups, func(i, j int) bool {
			a, b := groups[i].key, groups[j].key
			if a.family != b.family {
				return a.family < b.family
			}
			return a.genus < b.genus
		})
	}
	return groups
}

// drain cuts every full batch out of each group of pending and returns the
// concatenated remainders, group by group.
func (t tier) drain(
	p *Processor[sample.Record],
	pending []sample.Record,
	emit BatchCallback[sample.Record],
) ([]sample.Record, error) {
	var leftover []sample.Record
	for _, g := range partition(pending, t.key, t.order) {
		rest, err := p.Drain(g.records, emit)
		if err != nil {
			return nil, fmt.Errorf("tier %s: %w", t.name, err)
		}
		leftover = append(leftover, rest...)
	}
	return leftover, nil
}

// Plan is the outcome of one allocation.
type Plan struct {
	Batches []Batch
	Summary []SummaryRow
}

// Allocator partitions datasets into batches.
//
// An Allocator holds no state between calls; each Allocate call numbers its
// batches from batch_1.
type Allocator struct {
	layout       Layout
	familyColumn string
	genusColumn  string
	processor    *Processor[sample.Record]
	onProgress   ProgressCallback
}

// NewAllocator validates layout and returns an Allocator grouping on the given
// family and genus column names.
func NewAllocator(layout Layout, familyColumn, genusColumn string) (*Allocator, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	p, err := NewProcessor[sample.Record](layout.SamplesPerBatch)
	if err != nil {
		return nil, err
	}

	return &Allocator{
		layout:       layout,
		familyColumn: familyColumn,
		genusColumn:  genusColumn,
		processor:    p,
	}, nil
}

// WithProgressCallback sets a callback invoked after every emitted batch.
func (a *Allocator) WithProgressCallback(callback ProgressCallback) *Allocator {
	a.onProgress = callback
	return a
}

// Layout returns the batch structure in use.
func (a *Allocator) Layout() Layout {
	return a.layout
}

// Allocate runs the tier cascade over ds and composes every batch. Either all
// batches are returned or an error is; no partial plan escapes.
func (a *Allocator) Allocate(ctx context.Context, ds *sample.Dataset) (*Plan, error) {
	logger := logging.ComponentLogger(logging.FromContext(ctx), "engine")

	familyCol, err := ds.ColumnIndex(a.familyColumn)
	if err != nil {
		return nil, fmt.Errorf("grouping by family: %w", err)
	}
	genusCol, err := ds.ColumnIndex(a.genusColumn)
	if err != nil {
		return nil, fmt.Errorf("grouping by genus: %w", err)
	}

	var batches []Batch
	progress := NewProgress(ds.Len())
	emitter := func(tierName string) BatchCallback[sample.Record] {
		return func(records []sample.Record) error {
			b := Batch{
				ID:      ID(len(batches) + 1),
				Columns: ds.Columns,
				Rows:    a.layout.Compose(records),
			}
			batches = append(batches, b)

			progress.AddBatch(tierName, len(records))
			if a.onProgress != nil {
				a.onProgress(progress)
			}
			logger.Debug().
				Str("batch", b.ID).
				Str("tier", tierName).
				Int("samples", len(records)).
				Msg("batch composed")
			return nil
		}
	}

	pending := ds.Records
	for _, t := range cascade(familyCol, genusCol) {
		before := len(batches)
		pending, err = t.drain(a.processor, pending, emitter(t.name))
		if err != nil {
			return nil, err
		}
		logger.Debug().
			Str("tier", t.name).
			Int("batches", len(batches)-before).
			Int("carried", len(pending)).
			Msg("tier drained")
	}

	if len(pending) > 0 {
		if err = emitter(TierPartial)(pending); err != nil {
			return nil, err
		}
	}

	if !progress.IsComplete() {
		return nil, fmt.Errorf("%w: %d of %d samples placed",
			ErrIncompleteAllocation, progress.ProcessedItems, progress.TotalItems)
	}

	summary, err := Summarize(batches, a.familyColumn, a.genusColumn)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("samples", ds.Len()).
		Int("batches", len(batches)).
		Dur("elapsed", progress.ElapsedTime()).
		Msg("allocation complete")

	return &Plan{Batches: batches, Summary: summary}, nil
}
