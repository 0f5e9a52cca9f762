package resource

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amani-hq/amani/internal/identifier"
	"github.com/amani-hq/amani/internal/query"
	"github.com/amani-hq/amani/internal/sequence"
	"github.com/amani-hq/amani/pkg/pagination"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service runs the shared CRUD pipeline for one resource descriptor.
type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	seq  *sequence.Generator
	keys *identifier.Generator
	desc Descriptor
}

func NewService(db *gorm.DB, log *zap.Logger, seq *sequence.Generator, keys *identifier.Generator, desc Descriptor) *Service {
	return &Service{
		db:   db,
		log:  log.Named(desc.Name + ".service"),
		seq:  seq,
		keys: keys,
		desc: desc,
	}
}

// Descriptor returns the resource declaration this service runs.
func (s *Service) Descriptor() Descriptor {
	return s.desc
}

// ListRequest carries raw query values; the pipeline re-parses them
// defensively.
type ListRequest struct {
	Search string
	Status string
	Scopes map[string]string
	SortBy string
	Order  string
	Page   pagination.Params
	// UserID scopes the list to records created by that user.
	UserID *int64
}

type ListResult struct {
	Items []map[string]any
	Meta  pagination.Meta
}

// Create inserts a new record: assigns storage key and sequence id, stamps
// the creator, validates references against active targets, and runs the
// descriptor's AfterCreate hook inside the same transaction.
func (s *Service) Create(ctx context.Context, payload map[string]any, userID *int64) (map[string]any, error) {
	row, err := s.coerce(payload, true)
	if err != nil {
		return nil, err
	}
	if s.desc.BeforeWrite != nil {
		s.desc.BeforeWrite(row)
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.validateReferences(ctx, tx, row); err != nil {
			return err
		}

		seqNo, err := s.seq.Next(ctx, tx, s.desc.Table)
		if err != nil {
			return err
		}
		for k, v := range BaseRow(s.keys.NewKey(), seqNo, userID, now) {
			row[k] = v
		}

		if err := tx.Table(s.desc.Table).Create(row).Error; err != nil {
			return err
		}

		if s.desc.AfterCreate != nil {
			wc := WriteContext{Tx: tx, Seq: s.seq, Keys: s.keys, UserID: userID, Now: now}
			return s.desc.AfterCreate(ctx, wc, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("record created",
		zap.String("resource", s.desc.Name),
		zap.Any("seq_no", row["seq_no"]),
	)
	return row, nil
}

// GetByID looks a record up by storage key or sequence id and resolves its
// references for the response.
func (s *Service) GetByID(ctx context.Context, rawID string) (map[string]any, error) {
	rec, err := s.find(ctx, rawID)
	if err != nil {
		return nil, err
	}
	query.Resolve(ctx, s.db, s.log, []map[string]any{rec}, s.desc.References)
	return rec, nil
}

// List runs the filter/paginate/fetch/resolve pipeline.
func (s *Service) List(ctx context.Context, req ListRequest) (ListResult, error) {
	scopes := make(map[string]string, len(s.desc.Scopes))
	for param, column := range s.desc.Scopes {
		if raw, ok := req.Scopes[param]; ok {
			scopes[column] = raw
		}
	}

	pred := query.BuildPredicate(req.Search, req.Status, s.desc.SearchFields, scopes)
	if req.UserID != nil {
		pred.Equals = map[string]any{"created_by": *req.UserID}
	}

	rows, total, err := query.FetchPage(ctx, s.db, s.desc.Table, pred, s.sortSpec(req.SortBy, req.Order), req.Page.Limit, req.Page.Offset())
	if err != nil {
		return ListResult{}, err
	}

	query.Resolve(ctx, s.db, s.log, rows, s.desc.References)

	return ListResult{Items: rows, Meta: req.Page.Meta(total)}, nil
}

// Update applies a partial patch of declared mutable fields and stamps the
// updater. The returned record is the fresh row, references unresolved.
func (s *Service) Update(ctx context.Context, rawID string, payload map[string]any, userID *int64) (map[string]any, error) {
	rec, err := s.find(ctx, rawID)
	if err != nil {
		return nil, err
	}

	patch, err := s.coerce(payload, false)
	if err != nil {
		return nil, err
	}
	if s.desc.BeforeWrite != nil {
		s.desc.BeforeWrite(patch)
	}
	if err := s.validateReferences(ctx, s.db, patch); err != nil {
		return nil, err
	}

	return s.applyPatch(ctx, rec, patch, userID)
}

// SoftDelete marks the record inactive. Caller-supplied body fields are
// ignored; the mutation is always {status:false, updated_by, updated_at}.
// Deleting an already-deleted record succeeds with the same end state.
func (s *Service) SoftDelete(ctx context.Context, rawID string, userID *int64) (map[string]any, error) {
	rec, err := s.find(ctx, rawID)
	if err != nil {
		return nil, err
	}
	return s.applyPatch(ctx, rec, map[string]any{"status": false}, userID)
}

func (s *Service) applyPatch(ctx context.Context, rec, patch map[string]any, userID *int64) (map[string]any, error) {
	patch["updated_at"] = time.Now().UTC()
	if userID != nil {
		patch["updated_by"] = *userID
	} else {
		patch["updated_by"] = nil
	}

	key, _ := rec["id"].(string)
	err := s.db.WithContext(ctx).
		Table(s.desc.Table).
		Where("id = ?", key).
		Updates(patch).Error
	if err != nil {
		return nil, err
	}
	return s.find(ctx, key)
}

// find dispatches the lookup on the parsed identifier kind. Soft-deleted
// records are still addressable; only a missing row is ErrNotFound.
func (s *Service) find(ctx context.Context, rawID string) (map[string]any, error) {
	id := identifier.Parse(rawID)

	stmt := s.db.WithContext(ctx).Table(s.desc.Table)
	switch id.Kind {
	case identifier.KindStorageKey:
		stmt = stmt.Where("id = ?", id.Key)
	case identifier.KindSequence:
		stmt = stmt.Where("seq_no = ?", id.Seq)
	default:
		return nil, ErrInvalidIdentifier
	}

	var rows []map[string]any
	if err := stmt.Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (s *Service) sortSpec(sortBy, order string) query.Sort {
	sort := s.desc.DefaultSort
	if sort.Field == "" {
		sort = query.Sort{Field: "created_at", Desc: true}
	}
	if field := strings.TrimSpace(sortBy); field != "" && s.desc.sortable(field) {
		sort.Field = field
		sort.Desc = !strings.EqualFold(strings.TrimSpace(order), "asc")
	}
	return sort
}

// coerce filters the payload to declared fields and normalizes value types.
// On create it enforces required fields; on update it requires at least one
// mutable field.
func (s *Service) coerce(payload map[string]any, create bool) (map[string]any, error) {
	row := make(map[string]any, len(payload))
	for _, f := range s.desc.Fields {
		raw, present := payload[f.Name]
		if !present {
			if create && f.Required {
				return nil, Validationf("field %q is required", f.Name)
			}
			continue
		}
		if raw == nil {
			if f.Required {
				return nil, Validationf("field %q is required", f.Name)
			}
			row[f.Name] = nil
			continue
		}
		v, err := coerceValue(f, raw)
		if err != nil {
			return nil, err
		}
		row[f.Name] = v
	}

	if !create && len(row) == 0 {
		return nil, Validationf("at least one mutable field is required")
	}
	return row, nil
}

func coerceValue(f Field, raw any) (any, error) {
	switch f.Kind {
	case String:
		s, ok := raw.(string)
		if !ok {
			return nil, Validationf("field %q must be a string", f.Name)
		}
		if f.Required && strings.TrimSpace(s) == "" {
			return nil, Validationf("field %q is required", f.Name)
		}
		return s, nil
	case Int:
		if n, ok := query.AsInt64(raw); ok {
			return n, nil
		}
		if s, ok := raw.(string); ok {
			if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
				return n, nil
			}
		}
		return nil, Validationf("field %q must be an integer", f.Name)
	case Float:
		switch n := raw.(type) {
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		case int:
			return float64(n), nil
		}
		return nil, Validationf("field %q must be a number", f.Name)
	case Bool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
		if s, ok := raw.(string); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
				return b, nil
			}
		}
		return nil, Validationf("field %q must be a boolean", f.Name)
	case Time:
		s, ok := raw.(string)
		if !ok {
			return nil, Validationf("field %q must be a timestamp string", f.Name)
		}
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			return parsed.UTC(), nil
		}
		if parsed, err := time.Parse("2006-01-02", s); err == nil {
			return parsed.UTC(), nil
		}
		return nil, Validationf("field %q must be RFC3339 or YYYY-MM-DD", f.Name)
	case JSON:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, Validationf("field %q must be an object", f.Name)
		}
		return datatypes.JSONMap(m), nil
	default:
		return nil, Validationf("field %q has an unknown kind", f.Name)
	}
}

// validateReferences checks that every reference present in the patch points
// at an active target. Enforced at write time only; later soft-deletes do
// not retroactively invalidate stored links.
func (s *Service) validateReferences(ctx context.Context, conn *gorm.DB, row map[string]any) error {
	for _, ref := range s.desc.References {
		raw, present := row[ref.Column]
		if !present || raw == nil {
			continue
		}
		seq, ok := query.AsInt64(raw)
		if !ok {
			return Validationf("field %q must be numeric", ref.Column)
		}

		var count int64
		err := conn.WithContext(ctx).
			Table(ref.Table).
			Where("seq_no = ? AND status = ?", seq, true).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: %s %d", ErrDependencyNotFound, ref.Column, seq)
		}
	}
	return nil
}
