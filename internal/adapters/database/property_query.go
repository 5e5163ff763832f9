package database

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/lightbnb/backend/internal/domain/repositories"
)

// propertyCondition yields the search condition for one filter field, or
// false when the field is not set.
type propertyCondition func(filter repositories.PropertyFilter) (exp.Expression, bool)

// propertyConditions is the fixed order in which filters are applied:
// city, minimum price, maximum price, minimum rating, owner.
var propertyConditions = []propertyCondition{
	func(f repositories.PropertyFilter) (exp.Expression, bool) {
		if f.City == nil {
			return nil, false
		}
		return goqu.I("properties.city").Like("%" + *f.City + "%"), true
	},
	func(f repositories.PropertyFilter) (exp.Expression, bool) {
		if f.MinimumPricePerNight == nil {
			return nil, false
		}
		return goqu.I("properties.cost_per_night").Gte(*f.MinimumPricePerNight), true
	},
	func(f repositories.PropertyFilter) (exp.Expression, bool) {
		if f.MaximumPricePerNight == nil {
			return nil, false
		}
		return goqu.I("properties.cost_per_night").Lte(*f.MaximumPricePerNight), true
	},
	func(f repositories.PropertyFilter) (exp.Expression, bool) {
		if f.MinimumRating == nil {
			return nil, false
		}
		return goqu.I("property_reviews.rating").Gte(*f.MinimumRating), true
	},
	func(f repositories.PropertyFilter) (exp.Expression, bool) {
		if f.OwnerID == nil {
			return nil, false
		}
		return goqu.I("properties.owner_id").Eq(*f.OwnerID), true
	},
}

// BuildPropertySearchQuery renders the property search for filter. The
// returned args line up with the $N placeholders, the limit always last.
// A zero limit means repositories.DefaultLimit.
func BuildPropertySearchQuery(filter repositories.PropertyFilter, limit int) (string, []interface{}, error) {
	if limit == 0 {
		limit = repositories.DefaultLimit
	}

	selection := make([]interface{}, 0, len(propertyColumns)+2)
	selection = append(selection, goqu.I("properties.id"))
	for _, c := range propertyColumns {
		selection = append(selection, goqu.I("properties."+c.column))
	}
	selection = append(selection,
		goqu.I("properties.active"),
		goqu.AVG(goqu.I("property_reviews.rating")).As("average_rating"),
	)

	ds := dialect.From("properties").
		Select(selection...).
		LeftJoin(
			goqu.T("property_reviews"),
			goqu.On(goqu.I("properties.id").Eq(goqu.I("property_reviews.property_id"))),
		)

	// goqu opens with WHERE on the first condition and ANDs the rest.
	for _, condition := range propertyConditions {
		if expr, ok := condition(filter); ok {
			ds = ds.Where(expr)
		}
	}

	ds = ds.GroupBy(goqu.I("properties.id")).
		Order(goqu.I("properties.cost_per_night").Asc())

	return withLimit(ds, limit)
}
