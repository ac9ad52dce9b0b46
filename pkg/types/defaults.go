package types

import "github.com/wehubfusion/Daedalus/pkg/registry"

// Default config keys with registry-supplied values
const (
	defaultSampleMode        = "sample_mode"
	defaultCombineJoinWith   = "combine_join_with"
	defaultCombineAsList     = "combine_as_list"
	defaultCharClassJoinWith = "char_class_join_with"
	defaultSubsetJoinWith    = "subset_join_with"
	defaultDateFormat        = "date_format"
	defaultDateDurationDays  = "date_duration_days"
	defaultDateStddevDays    = "date_stddev_days"
	defaultCSVFile           = "csv_file"
	defaultDataDir           = "data_dir"
)

// registerDefaults registers the package-wide default configuration values
func registerDefaults(reg *registry.Registry) {
	// lists are iterated, not sampled, unless a field opts in
	reg.RegisterDefault(defaultSampleMode, func() interface{} { return false })
	reg.RegisterDefault(defaultCombineJoinWith, func() interface{} { return "" })
	reg.RegisterDefault(defaultCombineAsList, func() interface{} { return false })
	reg.RegisterDefault(defaultCharClassJoinWith, func() interface{} { return "" })
	reg.RegisterDefault(defaultSubsetJoinWith, func() interface{} { return " " })
	reg.RegisterDefault(defaultDateFormat, func() interface{} { return "02-01-2006" })
	reg.RegisterDefault(defaultDateDurationDays, func() interface{} { return 30 })
	reg.RegisterDefault(defaultDateStddevDays, func() interface{} { return 15 })
	reg.RegisterDefault(defaultCSVFile, func() interface{} { return "data.csv" })
	reg.RegisterDefault(defaultDataDir, func() interface{} { return "./data" })
}
