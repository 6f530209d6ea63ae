package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectToSQL(t *testing.T) {
	sql, args, err := Select("id", "title", "release_year").
		From("movies").
		Where(Eq("release_year", 2025), IsNull("deleted_at")).
		OrderBy("title ASC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL(): %v", err)
	}

	want := "SELECT id, title, release_year FROM movies WHERE release_year = $1 AND deleted_at IS NULL ORDER BY title ASC LIMIT 10"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{2025}) {
		t.Fatalf("args = %v", args)
	}
}

func TestSelectInEmptyValues(t *testing.T) {
	sql, args, err := Select("id").
		From("movies").
		Where(In("id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL(): %v", err)
	}
	if sql != "SELECT id FROM movies WHERE 1=0" {
		t.Fatalf("sql = %q", sql)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v, want empty", args)
	}
}

func TestSelectExprBindsArgs(t *testing.T) {
	sql, args, err := Select("id").
		From("movie_stats").
		Where(Expr("domestic_gross >= ?", 100_000_000), Eq("award_status", "achieved")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL(): %v", err)
	}

	want := "SELECT id FROM movie_stats WHERE domestic_gross >= $1 AND award_status = $2"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{100_000_000, "achieved"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestInsertMultiRowWithSuffix(t *testing.T) {
	sql, args, err := InsertInto("movie_stats").
		Columns("movie_id", "critic_score").
		Values(int64(1), 91).
		Values(int64(2), 78).
		Suffix("ON CONFLICT (movie_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL(): %v", err)
	}

	want := "INSERT INTO movie_stats (movie_id, critic_score) VALUES ($1, $2), ($3, $4) ON CONFLICT (movie_id) DO NOTHING"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if len(args) != 4 {
		t.Fatalf("args = %v", args)
	}
}

func TestInsertRowArityMismatch(t *testing.T) {
	_, _, err := InsertInto("movies").
		Columns("title", "release_year").
		Values("Sinners").
		ToSQL()
	if err == nil {
		t.Fatalf("ToSQL() accepted mismatched row arity")
	}
}

func TestUpdateSetAndSetExpr(t *testing.T) {
	sql, args, err := Update("movie_stats").
		Set("critic_score", 91).
		SetExpr("updated_at", "NOW()").
		SetExpr("domestic_gross", "GREATEST(domestic_gross, ?)", int64(120_000_000)).
		Where(Eq("movie_id", int64(7))).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL(): %v", err)
	}

	want := "UPDATE movie_stats SET critic_score = $1, updated_at = NOW(), domestic_gross = GREATEST(domestic_gross, $2) WHERE movie_id = $3"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{91, int64(120_000_000), int64(7)}) {
		t.Fatalf("args = %v", args)
	}
}

func TestEqLiteralQuotes(t *testing.T) {
	sql, args, err := Select("id").
		From("movies").
		Where(EqLiteral("title", "L'Accord")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL(): %v", err)
	}
	if sql != "SELECT id FROM movies WHERE title = 'L''Accord'" {
		t.Fatalf("sql = %q", sql)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Title   string `db:"title"`
		Year    int    `db:"release_year"`
		Skipped string `db:"-"`
		NoTag   string
	}

	sql, args, err := InsertModel("movies", row{Title: "Hamnet", Year: 2025, Skipped: "x", NoTag: "y"}, "")
	if err != nil {
		t.Fatalf("InsertModel(): %v", err)
	}

	want := "INSERT INTO movies (title, release_year) VALUES ($1, $2)"
	if sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"Hamnet", 2025}) {
		t.Fatalf("args = %v", args)
	}
}
