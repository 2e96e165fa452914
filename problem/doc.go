// Package problem defines the planning problem model: objects, atoms, action
// schemas, external declarations, and the YAML problem format.
//
// # Overview
//
// A Problem aggregates four things: a Domain of lifted action schemas, the
// initial state (ground atoms, optionally with numeric function values), a
// goal conjunction, and a set of ExternalDecl values describing the streams
// and functions that can derive new facts during solving.
//
// Everything in this package is pure data. External declarations in
// particular carry no behavior: a generator implementation is bound to a
// declaration by name only when the problem is handed to a solver, so the
// same problem file can be solved against different generator registries.
//
// # Atom Text Form
//
// Atoms are written "pred(arg1,arg2)" throughout: in YAML files, in
// signatures, and in logs. Arguments with a leading question mark are
// variables; everything else is an object symbol. Ground atoms use their
// text form as the canonical identity for evaluation-set membership.
//
// # YAML Structure Example
//
//	domain:
//	  name: rover
//	  actions:
//	    - name: move
//	      parameters: ["?from", "?to"]
//	      preconditions: ["at(?from)", "path(?from,?to)"]
//	      effects:
//	        add: ["at(?to)"]
//	        delete: ["at(?from)"]
//	      cost:
//	        function: "dist(?from,?to)"
//	init:
//	  - "at(q0)"
//	  - "dist(q0,q1) = 3.5"
//	goal:
//	  - "at(q1)"
//	externals:
//	  - name: sample-path
//	    kind: stream
//	    inputs: ["?from"]
//	    outputs: ["?to"]
//	    domain: ["at(?from)"]
//	    certified: ["path(?from,?to)"]
//
// # Error Handling
//
// ParseProblem and ParseProblemFile return *streamplan.StreamPlanError values
// with PROBLEM_PARSE_FAILED, PROBLEM_VALIDATION_FAILED, or PROBLEM_NOT_FOUND
// codes. A problem that parses successfully has passed full structural
// validation and can be handed to a solver as-is.
package problem
