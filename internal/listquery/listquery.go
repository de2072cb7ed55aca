package listquery

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-dealer-service/internal/apperror"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps the offset within int32.
	MaxPage = math.MaxInt32 / MaxLimit
)

// Params is the uniform list request shared by every list endpoint.
type Params struct {
	Search      string `json:"search,omitempty"`
	SortBy      string `json:"sortBy,omitempty"`
	SortOrder   string `json:"sortOrder,omitempty"`
	Page        int    `json:"page"`
	Limit       int    `json:"limit"`
	FilterKey   string `json:"filterKey,omitempty"`
	FilterValue string `json:"filterValue,omitempty"`
}

type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type Result[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

// FilterType says how a filter value is checked before it is bound.
type FilterType int

const (
	FilterText FilterType = iota
	FilterID
	FilterBool
)

// Spec describes one listable entity. Column maps go from request key to SQL expression.
// Filter keys missing from FilterTypes are compared as text.
type Spec struct {
	Select       string
	From         string
	SearchColumn string
	IDColumn     string
	Sortable     map[string]string
	Filterable   map[string]string
	FilterTypes  map[string]FilterType
	DefaultSort  string
	DefaultOrder string
	Conditions   []string
	Args         map[string]interface{}
}

type Query struct {
	Count string
	List  string
	Args  map[string]interface{}
}

// Queryer is satisfied by *sqlx.DB and *sqlx.Tx.
type Queryer interface {
	NamedQueryContext(ctx context.Context, query string, arg interface{}) (*sqlx.Rows, error)
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// ParseParams reads search, sortBy, sortOrder, page, limit, filter[key] and filter[value].
// Missing or malformed page/limit fall back to defaults; limit is capped at MaxLimit.
func ParseParams(q url.Values) Params {
	p := Params{
		Search:      strings.TrimSpace(q.Get("search")),
		SortBy:      strings.TrimSpace(q.Get("sortBy")),
		SortOrder:   strings.ToLower(strings.TrimSpace(q.Get("sortOrder"))),
		Page:        atoiDefault(q.Get("page"), DefaultPage),
		Limit:       atoiDefault(q.Get("limit"), DefaultLimit),
		FilterKey:   strings.TrimSpace(q.Get("filter[key]")),
		FilterValue: q.Get("filter[value]"),
	}
	return p.normalize()
}

func (p Params) normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.SortOrder != "asc" && p.SortOrder != "desc" {
		p.SortOrder = ""
	}
	return p
}

// Offset is the zero-based index of the first row on the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

func NewMeta(p Params, total int) Meta {
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: totalPages}
}

// Build renders the count and page queries for spec and p as sqlx named queries.
func Build(spec Spec, p Params) (*Query, error) {
	p = p.normalize()

	conditions := append([]string{}, spec.Conditions...)
	args := map[string]interface{}{}
	for k, v := range spec.Args {
		args[k] = v
	}

	if p.Search != "" && spec.SearchColumn != "" {
		conditions = append(conditions, spec.SearchColumn+` ILIKE :lq_search ESCAPE '\'`)
		args["lq_search"] = "%" + EscapeLike(p.Search) + "%"
	}

	if p.FilterKey != "" {
		column, ok := spec.Filterable[p.FilterKey]
		if !ok {
			return nil, apperror.Validation(fmt.Sprintf("unsupported filter key %q", p.FilterKey))
		}
		value, err := filterValue(spec.FilterTypes[p.FilterKey], p.FilterKey, p.FilterValue)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, column+" = :lq_filter")
		args["lq_filter"] = value
	}

	sortKey := p.SortBy
	sortOrder := p.SortOrder
	if sortKey == "" {
		sortKey = spec.DefaultSort
		if sortOrder == "" {
			sortOrder = strings.ToLower(spec.DefaultOrder)
		}
	}
	sortColumn, ok := spec.Sortable[sortKey]
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("unsupported sort field %q", sortKey))
	}
	direction := "ASC"
	if sortOrder == "desc" {
		direction = "DESC"
	}
	orderBy := sortColumn + " " + direction
	if spec.IDColumn != "" && spec.IDColumn != sortColumn {
		orderBy += ", " + spec.IDColumn + " " + direction
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	return &Query{
		Count: "SELECT count(*) FROM " + spec.From + whereClause,
		List: fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT %d OFFSET %d",
			spec.Select, spec.From, whereClause, orderBy, p.Limit, p.Offset()),
		Args: args,
	}, nil
}

// Run executes the list contract against db and returns one page plus meta.
func Run[T any](ctx context.Context, db Queryer, spec Spec, p Params) (*Result[T], error) {
	p = p.normalize()
	q, err := Build(spec, p)
	if err != nil {
		return nil, err
	}

	var total int
	rows, err := db.NamedQueryContext(ctx, q.Count, q.Args)
	if err != nil {
		return nil, err
	}
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			rows.Close()
			return nil, err
		}
	}
	rows.Close()

	data := []T{}
	if total > p.Offset() {
		nstmt, err := db.PrepareNamedContext(ctx, q.List)
		if err != nil {
			return nil, err
		}
		defer nstmt.Close()

		if err := nstmt.SelectContext(ctx, &data, q.Args); err != nil {
			return nil, err
		}
	}

	return &Result[T]{Data: data, Meta: NewMeta(p, total)}, nil
}

func filterValue(t FilterType, key, raw string) (interface{}, error) {
	switch t {
	case FilterID:
		if !model.ValidID(raw) {
			return nil, apperror.Validation(fmt.Sprintf("filter %q must be a valid id", key))
		}
		return raw, nil
	case FilterBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, apperror.Validation(fmt.Sprintf("filter %q must be true or false", key))
		}
		return b, nil
	default:
		return raw, nil
	}
}

// EscapeLike escapes LIKE wildcards so the term matches literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func atoiDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
