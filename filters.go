package main

import (
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// transactionFilter is the recognized configuration for listing transactions.
// The date range is always set; the id filters are optional and nil means
// "no constraint" for that dimension.
type transactionFilter struct {
	DateFrom        time.Time
	DateTo          time.Time
	StatusID        *uint
	OperationTypeID *uint
	CategoryID      *uint
	SubCategoryID   *uint
}

func nowUTC() time.Time { return time.Now().UTC() }

// defaultDateRange is first-of-current-month .. today.
func defaultDateRange(now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), today
}

// newTransactionFilter builds a filter from raw query values. Malformed
// date_from/date_to input is tolerated, not rejected: if either bound fails
// to parse, BOTH fall back to the default range, matching the behavior the
// list page has always had. An ABSENT param means the default bound; a
// present-but-empty one (the filter form submits empty fields) is a parse
// failure like any other garbage, so it resets both bounds too.
func newTransactionFilter(dateFrom string, hasDateFrom bool, dateTo string, hasDateTo bool,
	statusID, operationTypeID, categoryID, subcategoryID string) transactionFilter {
	defFrom, defTo := defaultDateRange(nowUTC())
	f := transactionFilter{DateFrom: defFrom, DateTo: defTo}

	if !hasDateFrom {
		dateFrom = defFrom.Format(dateLayout)
	}
	if !hasDateTo {
		dateTo = defTo.Format(dateLayout)
	}
	from, errFrom := time.Parse(dateLayout, dateFrom)
	to, errTo := time.Parse(dateLayout, dateTo)
	if errFrom == nil && errTo == nil {
		f.DateFrom = from
		f.DateTo = to
	}

	f.StatusID = parseOptionalID(statusID)
	f.OperationTypeID = parseOptionalID(operationTypeID)
	f.CategoryID = parseOptionalID(categoryID)
	f.SubCategoryID = parseOptionalID(subcategoryID)
	return f
}

// parseOptionalID treats empty or malformed values as "no filter".
func parseOptionalID(s string) *uint {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(v)
	return &id
}
