package services

import (
	"sort"

	"github.com/tdhoang/centavo/internal/models"
	"github.com/tdhoang/centavo/internal/money"
)

// SortRows orders report rows for display: rows with a positive net sum come
// first, and within each sign class rows are sorted by descending absolute
// magnitude. The sort is stable, so true ties keep their input order.
func SortRows(rows []*models.ReportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		pos1 := rows[i].Sum.Sign() > 0
		pos2 := rows[j].Sum.Sign() > 0
		if pos1 != pos2 {
			return pos1
		}
		return money.Compare(money.Positive(rows[i].Sum), money.Positive(rows[j].Sum)) > 0
	})
}
