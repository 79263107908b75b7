package dataset

// Record is an ordered mapping from field name to scalar value.
type Record struct {
	fields []string
	values map[string]Value
}

// NewRecord creates a record over the given field list with the given values,
// zipped positionally. Extra values are ignored; missing values stay null.
func NewRecord(fields []string, values ...Value) *Record {
	r := &Record{
		fields: fields,
		values: make(map[string]Value, len(fields)),
	}
	for i, f := range fields {
		if i < len(values) {
			r.values[f] = values[i]
		}
	}
	return r
}

// Get returns the value for a field. Unknown fields return Null; access is
// tolerant by contract so callers never need existence checks.
func (r *Record) Get(field string) Value {
	if r == nil {
		return Null()
	}
	v, ok := r.values[field]
	if !ok {
		return Null()
	}
	return v
}

// Has reports whether the record carries the named field.
func (r *Record) Has(field string) bool {
	if r == nil {
		return false
	}
	_, ok := r.values[field]
	return ok
}

// Fields returns the record's field names in order.
func (r *Record) Fields() []string {
	return r.fields
}

// Dataset is a finite ordered sequence of records from one side of a
// reconciliation run.
type Dataset struct {
	Name    string
	Fields  []string
	Records []*Record
}

// New creates an empty dataset with the given name and field list.
func New(name string, fields []string) *Dataset {
	return &Dataset{Name: name, Fields: fields}
}

// Append adds a record built from positional values over the dataset's fields.
func (d *Dataset) Append(values ...Value) *Record {
	r := NewRecord(d.Fields, values...)
	d.Records = append(d.Records, r)
	return r
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}
