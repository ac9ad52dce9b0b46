package types

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/spf13/cast"

	"github.com/wehubfusion/Daedalus/pkg/registry"
	"github.com/wehubfusion/Daedalus/pkg/spec"
	"github.com/wehubfusion/Daedalus/pkg/supplier"
)

// registerCSV registers the csv type
func registerCSV(reg *registry.Registry) {
	reg.RegisterType(TypeCSV, csvFactory)
}

// csvFactory supplies values from one column of a CSV file. The file is
// read fully at construction time so the generation hot path never touches
// disk. Column selection is by header name (requires headers) or 1-based
// index.
func csvFactory(fieldSpec *spec.FieldSpec, loader registry.Loader) (supplier.ValueSupplier, error) {
	config, err := loader.Config(fieldSpec)
	if err != nil {
		return nil, err
	}

	dataDir := cast.ToString(configValue(config, loader, "data_dir", defaultDataDir))
	fileName := cast.ToString(configValue(config, loader, "datafile", defaultCSVFile))
	path := filepath.Join(dataDir, fileName)

	records, err := readCSV(path, config)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, spec.Errorf(spec.CodeEmptyData, "csv file %s holds no rows", path)
	}

	hasHeaders := isAffirmative(config["headers"])
	column, err := resolveColumn(config, records, hasHeaders)
	if err != nil {
		return nil, err
	}

	rows := records
	if hasHeaders {
		rows = records[1:]
	}
	if len(rows) == 0 {
		return nil, spec.Errorf(spec.CodeEmptyData, "csv file %s holds no data rows", path)
	}

	values := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		if column < len(row) {
			values = append(values, row[column])
		}
	}
	if len(values) == 0 {
		return nil, spec.Errorf(spec.CodeEmptyData, "csv column yields no values in %s", path)
	}

	var built supplier.ValueSupplier
	if isAffirmative(configValue(config, loader, "sample", defaultSampleMode)) {
		built, err = supplier.SampledList(values)
	} else {
		built, err = supplier.List(values)
	}
	if err != nil {
		return nil, err
	}

	return wrapCount(built, config)
}

// readCSV loads the whole file with the configured delimiter
func readCSV(path string, config map[string]interface{}) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, spec.NewError(spec.CodeInvalidSpec, "unable to open csv file "+path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if raw, ok := config["delimiter"]; ok {
		delimiter := cast.ToString(raw)
		if len(delimiter) != 1 {
			return nil, spec.Errorf(spec.CodeInvalidSpec, "delimiter must be a single character, got %q", delimiter)
		}
		reader.Comma = rune(delimiter[0])
	}
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, spec.NewError(spec.CodeInvalidSpec, "unable to parse csv file "+path, err)
	}
	return records, nil
}

// resolveColumn turns the column config (header name or 1-based index) into
// a 0-based index
func resolveColumn(config map[string]interface{}, records [][]string, hasHeaders bool) (int, error) {
	raw, ok := config["column"]
	if !ok {
		return 0, nil
	}

	if index, err := cast.ToIntE(raw); err == nil {
		if index < 1 {
			return 0, spec.Errorf(spec.CodeInvalidSpec, "csv column index must be 1-based, got %d", index)
		}
		return index - 1, nil
	}

	name := cast.ToString(raw)
	if !hasHeaders {
		return 0, spec.Errorf(spec.CodeConflictingConfig, "csv column by name %q requires headers", name)
	}
	for i, header := range records[0] {
		if header == name {
			return i, nil
		}
	}
	return 0, spec.Errorf(spec.CodeMissingReference, "csv column %q not found in headers", name)
}
