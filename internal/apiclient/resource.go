package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/httperr"
)

// Resource is the list/create/update/delete surface of one API collection.
// T is the read shape, In the write payload.
type Resource[T any, In any] struct {
	c    *Client
	path string
}

func (r Resource[T, In]) itemPath(id int) string {
	return fmt.Sprintf("%s%d/", r.path, id)
}

// List coalesces concurrent identical calls for the same session. Each
// caller gets its own copy of the slice.
//
// The shared request is detached from the caller that started it and is
// bounded by the client timeout; every caller stops waiting when its own ctx
// ends.
func (r Resource[T, In]) List(ctx context.Context, sess Session) ([]T, error) {
	shared := context.WithoutCancel(ctx)
	ch := r.c.lists.DoChan(r.path+"|"+sess.key(), func() (any, error) {
		var items []T
		if _, err := r.c.do(shared, sess, http.MethodGet, r.path, nil, &items); err != nil {
			return nil, err
		}
		return items, nil
	})

	select {
	case <-ctx.Done():
		return nil, &httperr.TransportError{Op: http.MethodGet + " " + r.path, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		items := res.Val.([]T)
		return append(make([]T, 0, len(items)), items...), nil
	}
}

func (r Resource[T, In]) Create(ctx context.Context, sess Session, in In) error {
	_, err := r.c.do(ctx, sess, http.MethodPost, r.path, in, nil)
	return err
}

func (r Resource[T, In]) Update(ctx context.Context, sess Session, id int, in In) error {
	_, err := r.c.do(ctx, sess, http.MethodPut, r.itemPath(id), in, nil)
	return err
}

func (r Resource[T, In]) Delete(ctx context.Context, sess Session, id int) error {
	_, err := r.c.do(ctx, sess, http.MethodDelete, r.itemPath(id), nil, nil)
	return err
}
