package source

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"

	"github.com/thushan/holocron/internal/core/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const formatJSON = "json"

// peoplePage is either a bare array of records or one page of a SWAPI
// list response
type peoplePage struct {
	Next    string
	Records []domain.Record
	Count   int
	Paged   bool
}

func parsePeople(data []byte) (*peoplePage, error) {
	if !gjson.ValidBytes(data) {
		return nil, &domain.ParseError{Format: formatJSON, Err: errors.New("invalid JSON body")}
	}

	root := gjson.ParseBytes(data)
	if root.IsArray() {
		records, err := decodeRecords(root.Raw)
		if err != nil {
			return nil, err
		}
		return &peoplePage{Records: records, Count: len(records)}, nil
	}

	results := root.Get("results")
	if !results.IsArray() {
		return nil, &domain.ParseError{Format: formatJSON, Err: errors.New("response has no results array")}
	}

	records, err := decodeRecords(results.Raw)
	if err != nil {
		return nil, err
	}

	count := int(root.Get("count").Int())
	if count < len(records) {
		count = len(records)
	}

	return &peoplePage{
		Records: records,
		Count:   count,
		Next:    root.Get("next").String(),
		Paged:   true,
	}, nil
}

func decodeRecords(raw string) ([]domain.Record, error) {
	records := make([]domain.Record, 0)
	if err := json.UnmarshalFromString(raw, &records); err != nil {
		return nil, &domain.ParseError{Format: formatJSON, Err: err}
	}
	return records, nil
}

func parseRecord(data []byte) (domain.Record, error) {
	if !gjson.ValidBytes(data) {
		return domain.Record{}, &domain.ParseError{Format: formatJSON, Err: errors.New("invalid JSON body")}
	}
	if !gjson.GetBytes(data, "name").Exists() {
		return domain.Record{}, &domain.ParseError{Format: formatJSON, Err: fmt.Errorf("record has no name")}
	}

	var record domain.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.Record{}, &domain.ParseError{Format: formatJSON, Err: err}
	}
	return record, nil
}

// pageCount derives how many pages a SWAPI listing spans from the total and
// the size of the first page
func pageCount(total, firstPageSize int) int {
	if total <= 0 || firstPageSize <= 0 {
		return 1
	}
	return (total + firstPageSize - 1) / firstPageSize
}
