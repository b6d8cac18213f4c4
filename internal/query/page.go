package query

import "strconv"

// Page is a validated offset-pagination window.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Skip() int { return (p.Number - 1) * p.Limit }

// ParsePage clamps page/limit to sane bounds. Unparseable values fall back
// to the defaults rather than erroring, matching the listing endpoints'
// lenient contract.
func ParsePage(pageStr, limitStr string, defLimit, maxLimit int) Page {
	p := Page{Number: 1, Limit: defLimit}
	if n, err := strconv.Atoi(pageStr); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
		p.Limit = n
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// TotalPages computes the page count for a summed total.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
