// Package mapping holds field mappings from target field names to source
// column headers, the mapping file format, and the rename step that applies
// a mapping to a table.
//
// A mapping file looks like this (JSON shown, YAML is accepted too):
//
//	{
//	    "version": "1.0",
//	    "type": "csv2json_mapping",
//	    "mapping": {
//	        "zip_code": "PLZ",
//	        "first_name": "Vorname"
//	    }
//	}
//
// Entries keep their file order. A mapping is neither required to cover
// every target nor to use every source, and several targets may share one
// source.
package mapping
