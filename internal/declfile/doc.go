// Package declfile loads type declarations from YAML or TOML files.
//
// A declaration file lists types with their supertypes and attributes:
//
//	types:
//	  - name: app.OrderWorkflow
//	    kind: class
//	    parent: app.BaseWorkflow
//	    attributes:
//	      - kind: task_queue
//	        name: orders
//	      - kind: retry_policy
//	        attempts: 3
//	        init_interval: 1s
//
// Each attribute entry is decoded by the decoder registered for its kind.
// Attribute field values are decoded but not validated.
package declfile
