package repository

import (
	"strings"
	"testing"
)

func TestBuildKeywordLikeConditionSQLite(t *testing.T) {
	condition, argCount := buildKeywordLikeConditionByDialect("sqlite", []string{"name", "slug"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != "name LIKE ? OR slug LIKE ?" {
		t.Fatalf("condition mismatch, got %s", condition)
	}
}

func TestBuildKeywordLikeConditionPostgres(t *testing.T) {
	condition, argCount := buildKeywordLikeConditionByDialect("postgres", []string{"name", "email"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if !strings.Contains(condition, "name ILIKE ?") {
		t.Fatalf("condition should use ILIKE on postgres, got %s", condition)
	}
}

func TestBuildKeywordLikeConditionSkipsEmptyColumns(t *testing.T) {
	condition, argCount := buildKeywordLikeConditionByDialect("sqlite", []string{"name", " ", ""})
	if argCount != 1 {
		t.Fatalf("arg count want 1 got %d", argCount)
	}
	if condition != "name LIKE ?" {
		t.Fatalf("condition mismatch, got %s", condition)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
