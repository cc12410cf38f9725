package query_test

import (
	"fmt"

	"github.com/kbukum/linqkit/query"
)

func Example() {
	evens := query.Range(1, 10).Filter(func(n int) bool { return n%2 == 0 })
	squares := query.Select(evens, func(n int) int { return n * n })
	got, _ := squares.ToSlice()
	fmt.Println(got)
	// Output: [4 16 36 64 100]
}

func ExampleGroupBy() {
	words := query.Of("apple", "avocado", "banana", "blueberry", "cherry")
	groups := query.GroupBy(words, func(w string) byte { return w[0] })
	_ = groups.ForEach(func(g query.Grouping[byte, string]) error {
		fmt.Printf("%c %v\n", g.Key, g.Elements)
		return nil
	})
	// Output:
	// a [apple avocado]
	// b [banana blueberry]
	// c [cherry]
}

func ExampleUnion() {
	got, _ := query.Union(query.Of(2, 1, 4, 5, 4), query.Of(6, 4, 7, 8, 1)).ToSlice()
	fmt.Println(got)
	// Output: [2 1 4 5 6 7 8]
}

func ExampleQuery_FirstOrNone() {
	first, _ := query.Of(0, 1, 2).FirstOrNone()
	fmt.Println(first.IsPresent(), first.OrElse(-1))
	// Output: true 0
}

func ExampleOrderBy() {
	type item struct {
		Name  string
		Price int
	}
	items := query.Of(item{"b", 2}, item{"a", 2}, item{"c", 1})
	sorted := query.ThenBy(
		query.OrderBy(items, func(i item) int { return i.Price }),
		func(i item) string { return i.Name },
	)
	_ = sorted.ForEach(func(i item) error {
		fmt.Println(i.Name, i.Price)
		return nil
	})
	// Output:
	// c 1
	// a 2
	// b 2
}
