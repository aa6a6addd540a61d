package collection

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"shelvd/internal/catalog"
)

// Service provides collection business logic: CRUD over the repository plus
// member materialization through the resolver.
type Service struct {
	repo     Repository
	resolver *Resolver
}

// NewService creates a new collection service.
func NewService(repo Repository, resolver *Resolver) *Service {
	return &Service{repo: repo, resolver: resolver}
}

// Get returns one collection with its books materialized. limit < 0 means
// no truncation; limit == 0 skips resolution entirely (metadata only).
func (s *Service) Get(ctx context.Context, key string, limit int) (SingleCollection, error) {
	rec, err := s.repo.Get(ctx, key)
	if err != nil {
		return SingleCollection{}, err
	}

	books := []catalog.Book{}
	if limit != 0 {
		resolved, err := s.resolver.ResolveTitles(ctx, rec.Source, rec.Titles)
		if err != nil {
			return SingleCollection{}, fmt.Errorf("resolve %q: %w", key, err)
		}
		books = Truncate(resolved, limit)
		if books == nil {
			books = []catalog.Book{}
		}
	}

	return SingleCollection{
		Key:    rec.Key,
		Name:   rec.Name,
		Source: rec.Source,
		Books:  books,
	}, nil
}

// Overview returns the owner's collections grouped core/user. Books are not
// materialized here: population is lazy and clients fetch a single
// collection when they want members.
func (s *Service) Overview(ctx context.Context, ownerKey string) (Lists, error) {
	records, err := s.repo.ListForOwner(ctx, ownerKey)
	if err != nil {
		return Lists{}, err
	}

	out := Lists{Core: []SingleCollection{}, User: []SingleCollection{}}
	for _, rec := range records {
		sc := SingleCollection{
			Key:    rec.Key,
			Name:   rec.Name,
			Source: rec.Source,
			Books:  []catalog.Book{},
		}
		if rec.Type == catalog.ListTypeCore {
			out.Core = append(out.Core, sc)
		} else {
			out.User = append(out.User, sc)
		}
	}
	return out, nil
}

// Create stores a new collection owned by ownerKey. Core collections are
// system-curated and cannot be created through the API; only created and
// following types are accepted.
func (s *Service) Create(ctx context.Context, ownerKey, name string, listType catalog.ListType) (Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, fmt.Errorf("collection name cannot be empty")
	}
	if listType != catalog.ListTypeCreated && listType != catalog.ListTypeFollowing {
		return Record{}, fmt.Errorf("invalid list type: %s", listType)
	}

	now := time.Now().UTC()
	rec := Record{
		Key:       uuid.New().String(),
		Name:      name,
		Source:    catalog.SourceShelvd,
		Type:      listType,
		OwnerKey:  ownerKey,
		Titles:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Update renames a collection and/or replaces its member titles. Nil
// titles means "leave members alone"; an empty non-nil slice clears them.
// Only the owner may update; core collections are immutable through this
// path.
func (s *Service) Update(ctx context.Context, key, actorKey string, name *string, titles []string) (Record, error) {
	rec, err := s.repo.Get(ctx, key)
	if err != nil {
		return Record{}, err
	}
	if rec.Type == catalog.ListTypeCore || rec.OwnerKey != actorKey {
		return Record{}, ErrForbidden
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return Record{}, fmt.Errorf("collection name cannot be empty")
		}
		rec.Name = trimmed
	}
	if titles != nil {
		rec.Titles = titles
	}
	rec.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Delete removes a collection owned by the actor.
func (s *Service) Delete(ctx context.Context, key, actorKey string) error {
	rec, err := s.repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if rec.Type == catalog.ListTypeCore || rec.OwnerKey != actorKey {
		return ErrForbidden
	}

	deleted, err := s.repo.Delete(ctx, key)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
