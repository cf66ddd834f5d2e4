package repos

import (
	"fmt"
	"strings"

	"farmtech/internal/domain"
	"farmtech/internal/query"

	"github.com/jmoiron/sqlx"
)

const listingCols = `
    id, name, description, location, type, category, condition,
    rental_price, discount_price, deposit_amount, offer, image_urls, user_ref,
    created_at, updated_at`

// columns whitelists the criteria fields that may reach SQL.
var columns = map[string]string{
	query.FieldName:        "name",
	query.FieldDescription: "description",
	query.FieldLocation:    "location",
	query.FieldType:        "type",
	query.FieldCategory:    "category",
	query.FieldCondition:   "condition",
	query.FieldOffer:       "offer",
}

var sortColumns = map[query.SortField]string{
	query.SortCreatedAt:   "created_at",
	query.SortRentalPrice: "rental_price",
}

type ListingRepo struct{ db *sqlx.DB }

func NewListingRepo(db *sqlx.DB) *ListingRepo { return &ListingRepo{db: db} }

func (r *ListingRepo) Get(id string) (domain.Listing, error) {
	var l domain.Listing
	err := r.db.Get(&l, `SELECT `+listingCols+` FROM listings WHERE id = ?`, id)
	return l, err
}

func (r *ListingRepo) ListByUser(userID string) ([]domain.Listing, error) {
	out := []domain.Listing{}
	err := r.db.Select(&out, `
  SELECT `+listingCols+`
  FROM listings
  WHERE user_ref = ?
  ORDER BY created_at DESC, rowid DESC`, userID)
	return out, err
}

// Search applies the criteria's restrictions, sort and page.
func (r *ListingRepo) Search(c query.Criteria) ([]domain.Listing, error) {
	where, args, err := renderWhere(c.Restrictions())
	if err != nil {
		return nil, err
	}
	order, err := renderOrder(c.Sort)
	if err != nil {
		return nil, err
	}

	sql := `
  SELECT ` + listingCols + `
  FROM listings
  WHERE ` + where + `
  ORDER BY ` + order + `
  LIMIT ? OFFSET ?`
	args = append(args, c.Limit, c.StartIndex)

	out := []domain.Listing{}
	err = r.db.Select(&out, sql, args...)
	return out, err
}

func renderWhere(rs []query.Restriction) (string, []any, error) {
	clauses := []string{"1=1"}
	var args []any
	for _, r := range rs {
		switch r.Op {
		case query.OpEquals:
			col, ok := columns[r.Fields[0]]
			if !ok {
				return "", nil, fmt.Errorf("unknown filter field %q", r.Fields[0])
			}
			clauses = append(clauses, col+" = ?")
			args = append(args, sqlValue(r.Value))
		case query.OpContainsAny:
			var ors []string
			for _, f := range r.Fields {
				col, ok := columns[f]
				if !ok {
					return "", nil, fmt.Errorf("unknown search field %q", f)
				}
				// instr avoids LIKE's wildcard characters in user input
				ors = append(ors, "instr(fold("+col+"), fold(?)) > 0")
				args = append(args, r.Value)
			}
			clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
		default:
			return "", nil, fmt.Errorf("unsupported restriction %s", r.Op)
		}
	}
	return strings.Join(clauses, " AND "), args, nil
}

func renderOrder(s query.Sort) (string, error) {
	col, ok := sortColumns[s.Field]
	if !ok {
		return "", fmt.Errorf("unknown sort field %q", s.Field)
	}
	dir := "ASC"
	if s.Order == query.Desc {
		dir = "DESC"
	}
	return col + " " + dir + ", rowid " + dir, nil
}

func sqlValue(v any) any {
	if b, ok := v.(bool); ok {
		if b {
			return 1
		}
		return 0
	}
	return v
}

func (r *ListingRepo) Create(l *domain.Listing) error {
	ts := now()
	l.CreatedAt, l.UpdatedAt = ts, ts
	if l.ImageURLs == nil {
		l.ImageURLs = domain.StringList{}
	}
	_, err := r.db.NamedExec(`
  INSERT INTO listings(`+listingCols+`)
  VALUES(:id, :name, :description, :location, :type, :category, :condition,
    :rental_price, :discount_price, :deposit_amount, :offer, :image_urls, :user_ref,
    :created_at, :updated_at)`, l)
	return err
}

// Update rewrites the client-writable columns; owner and created_at are kept.
func (r *ListingRepo) Update(l *domain.Listing) error {
	l.UpdatedAt = now()
	_, err := r.db.NamedExec(`
  UPDATE listings SET
    name = :name, description = :description, location = :location,
    type = :type, category = :category, condition = :condition,
    rental_price = :rental_price, discount_price = :discount_price,
    deposit_amount = :deposit_amount, offer = :offer, image_urls = :image_urls,
    updated_at = :updated_at
  WHERE id = :id`, l)
	return err
}

func (r *ListingRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM listings WHERE id = ?`, id)
	return err
}
