package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
)

// CurrentVersion is the version of the built-in curriculum. Bump it whenever
// the embedded course files change; persisted content with any other version
// is replaced on load.
const CurrentVersion = 2

//go:embed data/*.json
var courseData embed.FS

// builtinOrder fixes course order; files not listed sort after, by name.
var builtinOrder = map[string]int{
	"es-en.json": 0,
	"ja-ko.json": 1,
}

// Default returns a fresh copy of the built-in curriculum. Callers may mutate
// the result freely.
func Default() *Data {
	courses, err := loadCourses(courseData)
	if err != nil {
		panic(fmt.Sprintf("polyglot: load built-in courses: %v", err))
	}
	return &Data{
		ContentVersion: CurrentVersion,
		Courses:        courses,
	}
}

func loadCourses(fsys fs.FS) ([]Course, error) {
	entries, err := fs.ReadDir(fsys, "data")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		oi, iok := builtinOrder[names[i]]
		oj, jok := builtinOrder[names[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})

	courses := make([]Course, 0, len(names))
	for _, name := range names {
		b, err := fs.ReadFile(fsys, "data/"+name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var c Course
		if err := json.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		courses = append(courses, c)
	}
	return courses, nil
}
