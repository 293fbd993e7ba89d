// Package manifest assembles the package descriptor for the stetho Python
// scripting distribution.
package manifest

import (
	"fmt"
	"sort"
	"strings"
)

// Descriptor is the static metadata record describing the distributable
// package. Created once per invocation and never mutated; the version is
// the only field that varies between builds.
type Descriptor struct {
	Name        string              `json:"name" yaml:"name"`
	Packages    []string            `json:"packages" yaml:"packages"`
	Version     string              `json:"version" yaml:"version"`
	Description string              `json:"description" yaml:"description"`
	Author      string              `json:"author" yaml:"author"`
	AuthorEmail string              `json:"author_email" yaml:"author_email"`
	URL         string              `json:"url" yaml:"url"`
	Keywords    []string            `json:"keywords" yaml:"keywords"`
	Classifiers []string            `json:"classifiers" yaml:"classifiers"`
	EntryPoints map[string][]string `json:"entry_points" yaml:"entry_points"`
}

// ConsoleScripts is the entry-point group for command-line scripts.
const ConsoleScripts = "console_scripts"

// Build merges a resolved version string with the fixed stetho metadata.
// Pure composition: the version is passed through verbatim and the
// literals never change, so equal inputs yield equal descriptors.
func Build(version string) Descriptor {
	return Descriptor{
		Name:        "stetho",
		Packages:    []string{"stetho"},
		Version:     version,
		Description: "Scripting interface for the Stetho Android debugging bridge",
		Author:      "Josh Guilfoyle",
		AuthorEmail: "jasta@devtcg.org",
		URL:         "https://github.com/facebook/stetho",
		Keywords:    []string{"debug", "dumpapp", "android"},
		Classifiers: []string{
			"Development Status :: 5 - Production/Stable",
			"Intended Audience :: Developers",
			"Topic :: Software Development :: Debuggers",
			"Topic :: Software Development :: Testing",
		},
		EntryPoints: map[string][]string{
			ConsoleScripts: {"dumpapp=stetho:dumpapp_main"},
		},
	}
}

// Render returns a human-readable multi-line rendering of the descriptor,
// used by the show command's text mode.
func (d Descriptor) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "name:        %s\n", d.Name)
	fmt.Fprintf(&b, "version:     %s\n", d.Version)
	fmt.Fprintf(&b, "description: %s\n", d.Description)
	fmt.Fprintf(&b, "author:      %s <%s>\n", d.Author, d.AuthorEmail)
	fmt.Fprintf(&b, "url:         %s\n", d.URL)
	fmt.Fprintf(&b, "packages:    %s\n", strings.Join(d.Packages, ", "))
	fmt.Fprintf(&b, "keywords:    %s\n", strings.Join(d.Keywords, ", "))
	b.WriteString("classifiers:\n")
	for _, c := range d.Classifiers {
		fmt.Fprintf(&b, "  %s\n", c)
	}
	b.WriteString("entry points:\n")
	for _, group := range sortedGroups(d.EntryPoints) {
		for _, ep := range d.EntryPoints[group] {
			fmt.Fprintf(&b, "  %s: %s\n", group, ep)
		}
	}
	return b.String()
}

func sortedGroups(m map[string][]string) []string {
	groups := make([]string, 0, len(m))
	for g := range m {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}
