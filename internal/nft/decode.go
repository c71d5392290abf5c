// Package nft decodes the positional tuples returned by the habit NFT
// contract into typed records. The chain returns untyped fixed-order
// tuples; every position is type-checked here instead of trusted.
package nft

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/habithero/habitherod/internal/models"
)

// Tuple positions as emitted by the contract's getAllNFTs query.
// The order is part of the wire format and must not change.
const (
	posCID         = 0
	posDescription = 1
	posTitle       = 2
	posStreak      = 3
	posCreatedAt   = 4
	posUpdatedAt   = 5

	tupleLen = 6
)

// Decode maps one raw tuple into a HabitNFT. index is the zero-based
// position in the collection and feeds the "Habit {n}" title fallback;
// owner is the wallet the collection belongs to.
func Decode(tuple []interface{}, index int, owner string) (*models.HabitNFT, error) {
	if len(tuple) != tupleLen {
		return nil, fmt.Errorf("malformed NFT tuple: expected %d fields, got %d", tupleLen, len(tuple))
	}

	cid, err := stringAt(tuple, posCID)
	if err != nil {
		return nil, err
	}
	description, err := stringAt(tuple, posDescription)
	if err != nil {
		return nil, err
	}
	title, err := stringAt(tuple, posTitle)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("Habit %d", index+1)
	}

	streak, err := intAt(tuple, posStreak)
	if err != nil {
		return nil, err
	}
	if streak < 0 {
		return nil, fmt.Errorf("NFT tuple field %d: streak must be >= 0, got %d", posStreak, streak)
	}

	createdAt, err := intAt(tuple, posCreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := intAt(tuple, posUpdatedAt)
	if err != nil {
		return nil, err
	}

	return &models.HabitNFT{
		ID:          int64(index),
		TokenID:     int64(index),
		CID:         cid,
		Title:       title,
		Description: description,
		Streak:      int(streak),
		Owner:       owner,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// DecodeAll decodes a full collection, rejecting the whole batch on the
// first malformed tuple.
func DecodeAll(tuples [][]interface{}, owner string) ([]models.HabitNFT, error) {
	habits := make([]models.HabitNFT, 0, len(tuples))
	for i, tuple := range tuples {
		h, err := Decode(tuple, i, owner)
		if err != nil {
			return nil, fmt.Errorf("NFT %d: %w", i, err)
		}
		habits = append(habits, *h)
	}
	return habits, nil
}

// Board computes the dashboard metrics over a decoded collection.
// Division is guarded so an empty collection yields 0%, never NaN.
func Board(habits []models.HabitNFT) *models.HabitBoard {
	completed := 0
	for i := range habits {
		if habits[i].Completed() {
			completed++
		}
	}
	total := len(habits)
	denom := total
	if denom < 1 {
		denom = 1
	}
	return &models.HabitBoard{
		Habits:             habits,
		Total:              total,
		Completed:          completed,
		ProgressPercentage: float64(completed) / float64(denom) * 100,
	}
}

// Rows converts the value the ABI layer unpacked for getAllNFTs into
// positional tuples. The binding may hand back a slice of anonymous
// structs (one field per tuple position) or a slice of []interface{};
// both are flattened in declared field order.
func Rows(v interface{}) ([][]interface{}, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("unexpected NFT query result kind %s", rv.Kind())
	}

	rows := make([][]interface{}, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Interface || elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}
		switch elem.Kind() {
		case reflect.Slice:
			row := make([]interface{}, elem.Len())
			for j := 0; j < elem.Len(); j++ {
				row[j] = elem.Index(j).Interface()
			}
			rows = append(rows, row)
		case reflect.Struct:
			row := make([]interface{}, elem.NumField())
			for j := 0; j < elem.NumField(); j++ {
				field := elem.Field(j)
				if !field.CanInterface() {
					return nil, fmt.Errorf("unexpected NFT tuple kind %s at index %d", elem.Kind(), i)
				}
				row[j] = field.Interface()
			}
			rows = append(rows, row)
		default:
			return nil, fmt.Errorf("unexpected NFT tuple kind %s at index %d", elem.Kind(), i)
		}
	}
	return rows, nil
}

func stringAt(tuple []interface{}, pos int) (string, error) {
	s, ok := tuple[pos].(string)
	if !ok {
		return "", fmt.Errorf("NFT tuple field %d: expected string, got %T", pos, tuple[pos])
	}
	return s, nil
}

// intAt accepts the numeric shapes the chain layer may produce: big
// integers from the ABI decoder, native integers, or decimal strings
// from JSON-ish gateways.
func intAt(tuple []interface{}, pos int) (int64, error) {
	switch v := tuple[pos].(type) {
	case *big.Int:
		if v == nil || !v.IsInt64() {
			return 0, fmt.Errorf("NFT tuple field %d: value out of range", pos)
		}
		return v.Int64(), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("NFT tuple field %d: %q is not an integer", pos, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("NFT tuple field %d: expected integer, got %T", pos, tuple[pos])
	}
}
