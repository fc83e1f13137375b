package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/courseplan/internal/catalog"
	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// yearFlag is a pflag.Value accepting year names or grade numbers.
type yearFlag struct {
	year domain.Year
}

var _ pflag.Value = (*yearFlag)(nil)

func (f *yearFlag) String() string { return string(f.year) }

func (f *yearFlag) Set(s string) error {
	y, ok := domain.ParseYear(s)
	if !ok {
		return fmt.Errorf("unknown year %q (want Freshman, Sophomore, Junior, Senior or 9-12)", s)
	}
	f.year = y
	return nil
}

func (f *yearFlag) Type() string { return "year" }

// filterFlags binds the catalog filter surface to a command.
type filterFlags struct {
	query     string
	desc      bool
	dept      string
	exactDept bool
	tags      catalog.TagToggles
}

func (f *filterFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.query, "query", "q", "", "Free-text search over title and department")
	fs.BoolVar(&f.desc, "desc", false, "Also search descriptions")
	fs.StringVar(&f.dept, "dept", "", "Department bucket (see 'catalog depts'); All for every department")
	fs.BoolVar(&f.exactDept, "exact-dept", false, "Match --dept against the original department text")
	fs.BoolVar(&f.tags.GESC, "gesc", false, "Only GESC courses")
	fs.BoolVar(&f.tags.PPR, "ppr", false, "Only PPR courses")
	fs.BoolVar(&f.tags.CL, "cl", false, "Only college-level courses")
	fs.BoolVar(&f.tags.ADV, "adv", false, "Only advanced courses")
	fs.BoolVar(&f.tags.FullYear, "full-year", false, "Only full-year courses")
	fs.BoolVar(&f.tags.Half, "half", false, "Only half courses")
}

func (f *filterFlags) spec() (catalog.FilterSpec, error) {
	spec := catalog.FilterSpec{
		Query:               f.query,
		IncludeDescriptions: f.desc,
		Department:          strings.TrimSpace(f.dept),
		Tags:                f.tags,
	}
	if f.exactDept {
		spec.DeptMatch = catalog.MatchExact
		return spec, nil
	}
	if spec.Department != "" {
		if _, ok := catalog.ParseDepartment(spec.Department); !ok {
			return spec, fmt.Errorf("unknown department %q", f.dept)
		}
	}
	return spec, nil
}

func requireFlags(cmd *cobra.Command, names ...string) {
	for _, n := range names {
		_ = cmd.MarkFlagRequired(n)
	}
}
