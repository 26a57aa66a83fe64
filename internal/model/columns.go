package model

// ColumnCount is the fixed width of the imsakiye table.
const ColumnCount = 8

// Column describes one fixed table column.
type Column struct {
	Key           string
	Name          string
	DefaultColor  string
	DefaultWeight string
	Bold          bool
}

// Columns lists the table schema in display order.
var Columns = [ColumnCount]Column{
	{Key: "hicri", Name: "Hicri Tarih", DefaultColor: "#333333", DefaultWeight: "normal"},
	{Key: "miladi", Name: "Miladi Tarih", DefaultColor: "#333333", DefaultWeight: "normal"},
	{Key: "imsak", Name: "İmsak", DefaultColor: "#dc3545", DefaultWeight: "bold", Bold: true},
	{Key: "gunes", Name: "Güneş", DefaultColor: "#333333", DefaultWeight: "normal"},
	{Key: "ogle", Name: "Öğle", DefaultColor: "#333333", DefaultWeight: "normal"},
	{Key: "ikindi", Name: "İkindi", DefaultColor: "#333333", DefaultWeight: "normal"},
	{Key: "aksam", Name: "Akşam", DefaultColor: "#28a745", DefaultWeight: "bold", Bold: true},
	{Key: "yatsi", Name: "Yatsı", DefaultColor: "#333333", DefaultWeight: "normal"},
}
