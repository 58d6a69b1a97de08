/*
Package engine applies a rule pipeline to a list of files and renames them.

	+-----------+     +------------+     +-------------+
	|  listing  | --> |   Engine   | <-- |  Pipeline   |
	| (entries) |     |  (phases)  |     |   (rules)   |
	+-----------+     +-----+------+     +-------------+
	                        |
	                  +-----+------+
	                  | FileSystem |
	                  +------------+

🔄 Pass:
 1. every enabled rule is reset once
 2. every entry is reset to its on-disk name
 3. checked entries go through the rules in pipeline order
 4. commit only: changed entries are renamed and replaced by fresh entries

🔒 Phases:
Refresh, preview, commit and undo share a single-slot semaphore. A phase
waits for the slot with the caller's context; once it holds the slot it runs
to the end.

📣 Notices:
Passes never return errors. Everything that went wrong is published as a
Notice with a stable key (rename_failed, duplicate_names, ...).

↩️ Failures:
With FailureRollback (the default) a failed rename reverts the renames
already made by the same commit, newest first. With FailureContinue the
remaining files are still renamed and the successful ones stay undoable.
Commits with duplicate target names are refused unless AllowDuplicates is
set.
*/
package engine
