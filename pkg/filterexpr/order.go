package filterexpr

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// OrderSchema describes ordering defaults and whitelisted keys.
type OrderSchema struct {
	DefaultPrimary     string
	DefaultPrimaryDesc bool
	FallbackKey        string
	FallbackDesc       bool
	Keys               []string
}

// Order is a parsed order_by clause of at most two keys.
type Order struct {
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

// ParseOrder parses clauses like "part desc, text". Empty input yields the
// schema defaults.
func ParseOrder(raw string, schema OrderSchema) (Order, error) { //nolint:gocognit // validation branches read better inline
	if schema.DefaultPrimary == "" {
		return Order{}, errors.New("order schema default primary key required")
	}
	if schema.FallbackKey == "" {
		return Order{}, errors.New("order schema fallback key required")
	}
	for _, key := range []string{schema.DefaultPrimary, schema.FallbackKey} {
		if !lo.Contains(schema.Keys, key) {
			return Order{}, fmt.Errorf("order key %q missing from schema keys", key)
		}
	}

	ord := Order{
		PrimaryKey:    schema.DefaultPrimary,
		PrimaryDesc:   schema.DefaultPrimaryDesc,
		SecondaryKey:  schema.FallbackKey,
		SecondaryDesc: schema.FallbackDesc,
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ord, nil
	}

	seen := make(map[string]struct{})
	idx := 0
	for _, seg := range strings.Split(raw, ",") {
		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		key := strings.ToLower(parts[0])
		if !lo.Contains(schema.Keys, key) {
			return Order{}, fmt.Errorf("field %q cannot be used for ordering", parts[0])
		}

		var desc bool
		switch len(parts) {
		case 1:
		case 2:
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				desc = true
			default:
				return Order{}, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
			}
		default:
			return Order{}, fmt.Errorf("invalid order segment %q", strings.TrimSpace(seg))
		}

		if _, dup := seen[key]; dup {
			return Order{}, fmt.Errorf("duplicate order key %q", key)
		}
		seen[key] = struct{}{}

		switch idx {
		case 0:
			ord.PrimaryKey, ord.PrimaryDesc = key, desc
			ord.SecondaryKey, ord.SecondaryDesc = "", false
		case 1:
			ord.SecondaryKey, ord.SecondaryDesc = key, desc
		default:
			return Order{}, errors.New("order_by supports at most two keys")
		}
		idx++
	}

	if ord.SecondaryKey == "" {
		ord.SecondaryKey, ord.SecondaryDesc = schema.FallbackKey, schema.FallbackDesc
	}
	if ord.SecondaryKey == ord.PrimaryKey {
		ord.SecondaryKey = ""
	}
	return ord, nil
}

// Compare orders two records by the primary key, then the secondary key.
func (o Order) Compare(a, b Record) int {
	if c := compareField(a[o.PrimaryKey], b[o.PrimaryKey], o.PrimaryDesc); c != 0 {
		return c
	}
	if o.SecondaryKey == "" {
		return 0
	}
	return compareField(a[o.SecondaryKey], b[o.SecondaryKey], o.SecondaryDesc)
}

// Sort stably orders items by the records extracted from them.
func Sort[T any](items []T, order Order, record func(T) Record) {
	entries := lo.Map(items, func(item T, _ int) lo.Tuple2[T, Record] {
		return lo.T2(item, record(item))
	})
	slices.SortStableFunc(entries, func(a, b lo.Tuple2[T, Record]) int {
		return order.Compare(a.B, b.B)
	})
	for i, entry := range entries {
		items[i] = entry.A
	}
}

func compareField(a, b any, desc bool) int {
	c := compareValues(a, b)
	if desc {
		return -c
	}
	return c
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return cmp.Compare(av, bv)
	case float64:
		bv, _ := b.(float64)
		return cmp.Compare(av, bv)
	case bool:
		bv, _ := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	default:
		return 0
	}
}
