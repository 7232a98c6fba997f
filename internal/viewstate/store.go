// Package viewstate keeps view.Memory between requests of one browser
// session, keyed by the dash_sid cookie and the view name.
package viewstate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/view"
)

const DefaultTTL = 30 * time.Minute

type Store interface {
	// Load returns the zero Memory when nothing is stored for the key.
	Load(ctx context.Context, sid, name string) (view.Memory, error)
	Save(ctx context.Context, sid, name string, m view.Memory) error
	// Forget drops every view of the session.
	Forget(ctx context.Context, sid string) error
}

func key(sid, name string) string {
	return fmt.Sprintf("dash:view:%s:%s", sid, name)
}

func encode(m view.Memory) ([]byte, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode view memory: %w", err)
	}
	return b, nil
}

func decode(b []byte) (view.Memory, error) {
	var m view.Memory
	if err := json.Unmarshal(b, &m); err != nil {
		return view.Memory{}, fmt.Errorf("decode view memory: %w", err)
	}
	return m, nil
}

// Views lists the names Forget clears.
var Views = []string{"clients", "establishments", "reservations"}
