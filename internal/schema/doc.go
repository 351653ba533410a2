// Package schema loads field type schemas.
//
// A schema maps column names to one of the scalar kinds str, int, float
// or bool. Files are read as YAML (JSON is accepted as a YAML subset); when
// that fails the text is read as a legacy literal dictionary, e.g.
//
//	{'name': 'str', 'amount': float, 'items.qty': 'int'}
//
// Either form may wrap the field map in a "fields" key next to the
// "displayName" and "root" metadata:
//
//	displayName: Orders
//	root: orders
//	fields:
//	  name: str
//	  amount: float
package schema
