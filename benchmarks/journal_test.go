package benchmarks

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/randalmurphal/rpncalc/pkg/rpncalc"
	"github.com/randalmurphal/rpncalc/pkg/rpncalc/journal"
)

func benchEntry(i int) journal.Entry {
	return journal.Entry{
		ID:      "calc-" + strconv.Itoa(i),
		Tokens:  buildExpression(10),
		Postfix: buildExpression(10),
		Value:   float64(i),
	}
}

// BenchmarkMemoryStore_Save measures in-memory journal writes.
func BenchmarkMemoryStore_Save(b *testing.B) {
	store := journal.NewMemoryStore()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(benchEntry(i % 100))
	}
}

// BenchmarkMemoryStore_List measures listing the newest 20 of 1000 entries.
func BenchmarkMemoryStore_List(b *testing.B) {
	store := journal.NewMemoryStore()
	for i := 0; i < 1000; i++ {
		_ = store.Save(benchEntry(i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.List(20)
	}
}

// BenchmarkSQLiteStore_Save measures SQLite journal writes.
func BenchmarkSQLiteStore_Save(b *testing.B) {
	dbPath := b.TempDir() + "/bench.db"
	store, err := journal.NewSQLiteStore(dbPath)
	if err != nil {
		b.Fatal(err)
	}
	defer store.Close()
	defer os.Remove(dbPath)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(benchEntry(i % 100))
	}
}

// BenchmarkSQLiteStore_List measures listing the newest 20 of 1000 entries.
func BenchmarkSQLiteStore_List(b *testing.B) {
	store, err := journal.NewSQLiteStore(":memory:")
	if err != nil {
		b.Fatal(err)
	}
	defer store.Close()
	for i := 0; i < 1000; i++ {
		_ = store.Save(benchEntry(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.List(20)
	}
}

// BenchmarkCalculate_WithJournal measures the journal overhead per calculation.
func BenchmarkCalculate_WithJournal(b *testing.B) {
	store := journal.NewMemoryStore()
	calc := rpncalc.New(rpncalc.WithJournal(store))
	tokens := buildExpression(10)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = calc.Calculate(ctx, tokens)
	}
}
