/*
Package schema holds the error types reported when a machine definition fails validation.

Validation never stops at the first problem: every failing field is collected into an
AggregateError so that an editor can highlight all of them at once.
*/
package schema
