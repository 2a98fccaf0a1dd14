// Package category maps file extensions to the folder groups used by
// sort-by-filetype organization.
//
// The table is static and case-insensitive; unknown or missing extensions
// fall into Other so every file has a destination.
package category
