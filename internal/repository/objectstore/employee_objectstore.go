package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"employeeapi/internal/model"
	"employeeapi/internal/repository"
	"employeeapi/internal/storage"
)

const contentType = "application/json"

// EmployeeObjectStore keeps each employee as a JSON object named <prefix>/<id>.json.
// ID allocation is serialised in-process, so a bucket must have a single writer instance.
type EmployeeObjectStore struct {
	store  storage.Storage
	prefix string

	mu     sync.Mutex
	loaded bool
	lastID int64

	// writeMu serialises updates of existing records with deletes.
	writeMu sync.Mutex
}

var (
	_ repository.EmployeeRepository = (*EmployeeObjectStore)(nil)
	_ repository.Pinger             = (*EmployeeObjectStore)(nil)
)

// NewEmployeeObjectStore creates a repository over store, keeping objects under prefix.
func NewEmployeeObjectStore(store storage.Storage, prefix string) *EmployeeObjectStore {
	return &EmployeeObjectStore{store: store, prefix: strings.Trim(prefix, "/")}
}

func (r *EmployeeObjectStore) key(id int64) string {
	return path.Join(r.prefix, strconv.FormatInt(id, 10)+".json")
}

func (r *EmployeeObjectStore) listPrefix() string {
	if r.prefix == "" {
		return ""
	}
	return r.prefix + "/"
}

// idFromKey parses "<prefix>/<id>.json"; ok is false for foreign objects.
func (r *EmployeeObjectStore) idFromKey(key string) (int64, bool) {
	name := strings.TrimPrefix(key, r.listPrefix())
	if strings.Contains(name, "/") || !strings.HasSuffix(name, ".json") {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSuffix(name, ".json"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (r *EmployeeObjectStore) Save(ctx context.Context, emp *model.Employee) (*model.Employee, error) {
	out := *emp
	if out.ID == 0 {
		id, err := r.nextID(ctx)
		if err != nil {
			return nil, err
		}
		out.ID = id
		return r.put(ctx, out)
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if _, err := r.FindByID(ctx, out.ID); err != nil {
		return nil, err
	}
	return r.put(ctx, out)
}

func (r *EmployeeObjectStore) put(ctx context.Context, out model.Employee) (*model.Employee, error) {
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode employee %d: %w", out.ID, err)
	}
	if _, err := r.store.Put(ctx, r.key(out.ID), bytes.NewReader(b), storage.PutObjectOptions{
		Size:        int64(len(b)),
		ContentType: contentType,
	}); err != nil {
		return nil, fmt.Errorf("put employee %d: %w", out.ID, err)
	}
	return &out, nil
}

// nextID allocates max(existing)+1. The high-water mark is seeded from a bucket
// listing on first use and only moves forward, so IDs of deleted objects are not reused.
func (r *EmployeeObjectStore) nextID(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		objs, err := r.store.List(ctx, r.listPrefix())
		if err != nil {
			return 0, fmt.Errorf("list employees: %w", err)
		}
		for _, o := range objs {
			if id, ok := r.idFromKey(o.Key); ok && id > r.lastID {
				r.lastID = id
			}
		}
		r.loaded = true
	}
	r.lastID++
	return r.lastID, nil
}

func (r *EmployeeObjectStore) FindAll(ctx context.Context) ([]model.Employee, error) {
	objs, err := r.store.List(ctx, r.listPrefix())
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	ids := make([]int64, 0, len(objs))
	for _, o := range objs {
		if id, ok := r.idFromKey(o.Key); ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]model.Employee, 0, len(ids))
	for _, id := range ids {
		e, err := r.FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted between listing and read.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *EmployeeObjectStore) FindByID(ctx context.Context, id int64) (*model.Employee, error) {
	rc, _, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get employee %d: %w", id, err)
	}
	defer rc.Close()

	var e model.Employee
	if err := json.NewDecoder(rc).Decode(&e); err != nil {
		return nil, fmt.Errorf("decode employee %d: %w", id, err)
	}
	e.ID = id
	return &e, nil
}

func (r *EmployeeObjectStore) DeleteByID(ctx context.Context, id int64) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := r.store.Delete(ctx, r.key(id)); err != nil {
		return fmt.Errorf("delete employee %d: %w", id, err)
	}
	return nil
}

func (r *EmployeeObjectStore) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
