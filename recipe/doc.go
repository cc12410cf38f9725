// Package recipe runs declarative queries over decoded records.
//
// A recipe is a YAML (or JSON) document naming a chain of steps and one
// terminal:
//
//	name: adult-names
//	steps:
//	  - op: where
//	    where: {field: age, cmp: gte, value: 18}
//	  - op: order_by
//	    field: age
//	    desc: true
//	    then: [{field: name}]
//	  - op: select
//	    fields: [name, age]
//	terminal:
//	  op: list
//
// Build turns the steps into a lazy query.Query[Record]; Execute drives it
// with the terminal; Run does both under an observed run. Comparisons
// between values of different kinds (a number against a string, say) fail
// with an INVALID_INPUT error instead of being silently ordered.
package recipe
