// =============================================================================
// dialect - Dataset Export
// =============================================================================
//
// This module serializes a coerced dataset to XML or JSON for downstream
// systems. Column names can be empty or contain characters that are not
// legal XML element names, so XML output uses generic <field name="..">
// elements rather than deriving element names from headers.
//
// =============================================================================

package export

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/jordanmiceli/dialect/internal/dataset"
)

// Format selects the export serialization.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate serializes the dataset in the given format.
//
// PARAMETERS:
//   - ds: the coerced dataset.
//   - name: the dataset display name, embedded in the output.
//   - format: FormatXML or FormatJSON.
//
// RETURNS:
//   - The serialized document.
//   - An error for an unknown format or a marshalling failure.
func Generate(ds *dataset.Dataset, name string, format Format) ([]byte, error) {
	switch format {
	case FormatXML:
		return generateXML(ds, name)
	case FormatJSON:
		return generateJSON(ds, name)
	default:
		return nil, fmt.Errorf("unsupported export format: %q", format)
	}
}

// =============================================================================
// XML OUTPUT
// =============================================================================

// xmlDocument is the root element of the XML output.
//
// STRUCTURE:
//   <dataset name="population">
//     <columns>
//       <column n="1">country</column>
//     </columns>
//     <row n="1">
//       <field name="country">Canada</field>
//     </row>
//   </dataset>
type xmlDocument struct {
	XMLName xml.Name    `xml:"dataset"`
	Name    string      `xml:"name,attr"`
	Columns []xmlColumn `xml:"columns>column"`
	Rows    []xmlRow    `xml:"row"`
}

type xmlColumn struct {
	Index int    `xml:"n,attr"`
	Name  string `xml:",chardata"`
}

type xmlRow struct {
	Index  int        `xml:"n,attr"`
	Fields []xmlField `xml:"field"`
}

type xmlField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

func generateXML(ds *dataset.Dataset, name string) ([]byte, error) {
	doc := xmlDocument{Name: name}

	for i, column := range ds.Columns {
		doc.Columns = append(doc.Columns, xmlColumn{Index: i + 1, Name: column})
	}

	for i, row := range ds.Rows {
		element := xmlRow{Index: i + 1}
		// Fields in column order, so output is stable across runs.
		for _, column := range ds.Columns {
			element.Fields = append(element.Fields, xmlField{
				Name:  column,
				Value: cellText(row[column]),
			})
		}
		doc.Rows = append(doc.Rows, element)
	}

	var buffer bytes.Buffer
	buffer.WriteString(xml.Header)

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal XML: %w", err)
	}
	buffer.Write(body)
	buffer.WriteByte('\n')

	return buffer.Bytes(), nil
}

// cellText renders a coerced cell for XML output. Numbers use the shortest
// representation that round-trips.
func cellText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatFloat(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// =============================================================================
// JSON OUTPUT
// =============================================================================

// jsonDocument mirrors the dataset shape: ordered columns plus rows keyed
// by column name.
type jsonDocument struct {
	Name    string        `json:"name"`
	Columns []string      `json:"columns"`
	Rows    []dataset.Row `json:"rows"`
}

func generateJSON(ds *dataset.Dataset, name string) ([]byte, error) {
	doc := jsonDocument{
		Name:    name,
		Columns: ds.Columns,
		Rows:    ds.Rows,
	}
	if doc.Columns == nil {
		doc.Columns = []string{}
	}
	if doc.Rows == nil {
		doc.Rows = []dataset.Row{}
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(body, '\n'), nil
}
