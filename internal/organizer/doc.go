// Package organizer plans and executes file moves within a target
// directory. A run is split into two phases: Plan walks the directory and
// computes every move a matcher calls for without touching disk, and
// Execute carries the plan out under a directory lock, journaling each
// completed move so the run can later be reversed.
//
// Matchers decide where a file belongs. RegexMatcher derives the
// destination folder from the pattern's first capture group, and
// CategoryMatcher buckets files by extension. Collisions at the
// destination are resolved by configuration, either probing for a free
// "name (n).ext" path or skipping the file.
//
// PlanReverse and ExecuteReverse replay the directory's journal newest
// first, restoring files to their recorded origins and pruning the
// directories the restore emptied.
package organizer
