package employee

import (
	"iter"
	"strings"

	"golang.org/x/text/cases"
)

// ViewQuery は一覧表示の検索条件です。空のフィールドは条件として扱いません。
type ViewQuery struct {
	SearchText string
	Position   Position
	Department Department
}

// Filter は list を q で絞り込む遅延シーケンスを返します。順序は list の順序を保ちます。
func Filter(list []*Employee, q ViewQuery) iter.Seq[*Employee] {
	return func(yield func(*Employee) bool) {
		match := q.matcher()
		for _, e := range list {
			if e == nil || !match(e) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

func (q ViewQuery) matcher() func(*Employee) bool {
	// cases.Caser はゴルーチン間で共有できないため呼び出しごとに生成します。
	folder := cases.Fold()
	needle := folder.String(q.SearchText)

	return func(e *Employee) bool {
		if q.Position != "" && e.Position != q.Position {
			return false
		}
		if q.Department != "" && e.Department != q.Department {
			return false
		}
		if q.SearchText == "" {
			return true
		}
		return strings.Contains(e.ID, q.SearchText) || strings.Contains(folder.String(e.Name), needle)
	}
}
