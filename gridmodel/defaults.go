package gridmodel

// Built-in fallback tables for the nine regional power companies.
// Used whenever a CSV source is missing or unreadable. Positions are
// approximate service-area centers (latitude, longitude), capacities
// are nominal generation capacity in GW.

// DefaultPositions maps company names to their map positions. CSV-loaded
// capacity rows resolve their coordinates here (or from config
// overrides); a row whose company has no position is skipped.
var DefaultPositions = map[string]Position{
	"北海道": {Lat: 43.2, Lon: 141.5, Label: "Hokkaido"},
	"東北":  {Lat: 38.5, Lon: 140.5, Label: "Tohoku"},
	"東京":  {Lat: 35.7, Lon: 139.7, Label: "Tokyo"},
	"中部":  {Lat: 35.2, Lon: 137.0, Label: "Chubu"},
	"北陸":  {Lat: 36.8, Lon: 137.2, Label: "Hokuriku"},
	"関西":  {Lat: 34.7, Lon: 135.5, Label: "Kansai"},
	"中国":  {Lat: 34.4, Lon: 132.5, Label: "Chugoku"},
	"四国":  {Lat: 33.8, Lon: 133.5, Label: "Shikoku"},
	"九州":  {Lat: 33.0, Lon: 130.5, Label: "Kyushu"},
}

// DefaultCompanies is the fallback node table, in fixed north-to-south
// order so that runs without a capacity CSV are deterministic.
var DefaultCompanies = []CompanyNode{
	{Name: "北海道", Lat: 43.2, Lon: 141.5, Label: "Hokkaido", CapacityGW: 8.5},
	{Name: "東北", Lat: 38.5, Lon: 140.5, Label: "Tohoku", CapacityGW: 17.2},
	{Name: "東京", Lat: 35.7, Lon: 139.7, Label: "Tokyo", CapacityGW: 52.8},
	{Name: "中部", Lat: 35.2, Lon: 137.0, Label: "Chubu", CapacityGW: 32.1},
	{Name: "北陸", Lat: 36.8, Lon: 137.2, Label: "Hokuriku", CapacityGW: 7.3},
	{Name: "関西", Lat: 34.7, Lon: 135.5, Label: "Kansai", CapacityGW: 33.5},
	{Name: "中国", Lat: 34.4, Lon: 132.5, Label: "Chugoku", CapacityGW: 12.8},
	{Name: "四国", Lat: 33.8, Lon: 133.5, Label: "Shikoku", CapacityGW: 6.7},
	{Name: "九州", Lat: 33.0, Lon: 130.5, Label: "Kyushu", CapacityGW: 18.9},
}

// DefaultConnections is the fallback interconnection list, a connected
// chain over the nine companies.
var DefaultConnections = []ConnectionEdge{
	{A: "北海道", B: "東北"},
	{A: "東北", B: "東京"},
	{A: "東京", B: "中部"},
	{A: "中部", B: "北陸"},
	{A: "中部", B: "関西"},
	{A: "北陸", B: "関西"},
	{A: "関西", B: "中国"},
	{A: "関西", B: "四国"},
	{A: "中国", B: "九州"},
}
