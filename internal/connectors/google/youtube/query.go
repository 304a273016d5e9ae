package youtube

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Age restricts results to videos published within a recent period.
type Age int

const (
	AgeAllTime Age = iota
	AgeToday
	AgeThisWeek
	AgeThisMonth
)

var ageNames = map[Age]string{
	AgeAllTime:   "all_time",
	AgeToday:     "today",
	AgeThisWeek:  "this_week",
	AgeThisMonth: "this_month",
}

func (a Age) String() string { return ageNames[a] }

// SafeSearch controls whether restricted content is returned.
type SafeSearch int

const (
	SafeSearchNone SafeSearch = iota
	SafeSearchModerate
	SafeSearchStrict
)

var safeSearchNames = map[SafeSearch]string{
	SafeSearchNone:     "none",
	SafeSearchModerate: "moderate",
	SafeSearchStrict:   "strict",
}

func (s SafeSearch) String() string { return safeSearchNames[s] }

// Orderings and licences accepted by the setters. Unrecognised values are
// dropped from the URI.
const (
	OrderRelevance = "relevance"
	OrderPublished = "published"
	OrderViewCount = "viewCount"
	OrderRating    = "rating"

	// OrderRelevanceLangPrefix is followed by a language tag, e.g.
	// "relevance_lang_fr".
	OrderRelevanceLangPrefix = "relevance_lang_"

	LicenseCreativeCommons = "cc"
	LicenseStandard        = "youtube"
)

// NoLocation is the latitude and longitude of a query without a location.
const NoLocation = math.MaxFloat64

// Query searches for videos. It pages with server tokens and writes only
// the parameters the v3 search endpoint understands, so the shared GData
// parameters other than q, categories and max-results are ignored.
type Query struct {
	gdata.Query

	age         Age
	safeSearch  SafeSearch
	latitude    float64
	longitude   float64
	radius      float64
	orderBy     string
	restriction string
	license     string

	now func() time.Time
}

// NewQuery returns a query for the free-text search q, which may be empty.
func NewQuery(q string) *Query {
	query := &Query{
		safeSearch: SafeSearchModerate,
		latitude:   NoLocation,
		longitude:  NoLocation,
		now:        time.Now,
	}
	query.Init(q)
	query.SetPaginationType(gdata.PaginationTokens)
	return query
}

// SetClock replaces the clock the age restriction is measured from.
func (q *Query) SetClock(now func() time.Time) { q.now = now }

// QueryURI implements gdata.Querier.
func (q *Query) QueryURI(feedURI string) (string, error) {
	return gdata.BuildURI(&q.Query, feedURI, q)
}

func orderV3(orderBy string) string {
	switch orderBy {
	case OrderRelevance:
		return "relevance"
	case OrderPublished:
		return "date"
	case OrderViewCount:
		return "viewCount"
	case OrderRating:
		return "rating"
	}
	if strings.HasPrefix(orderBy, OrderRelevanceLangPrefix) {
		return "relevance"
	}
	return ""
}

func licenseV3(license string) string {
	switch license {
	case LicenseCreativeCommons:
		return "creativeCommon"
	case LicenseStandard:
		return "youtube"
	}
	return ""
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (q *Query) publishedAfter() int64 {
	now := q.now().UTC().Truncate(time.Second)
	switch q.age {
	case AgeToday:
		now = now.AddDate(0, 0, -1)
	case AgeThisWeek:
		now = now.AddDate(0, 0, -7)
	case AgeThisMonth:
		now = now.AddDate(0, -1, 0)
	}
	return now.Unix()
}

// AppendParams writes the search parameters. safeSearch is always present.
func (q *Query) AppendParams(w *gdata.URIWriter) {
	if c := q.Categories(); c != "" {
		w.Param("videoCategoryId", c)
	}
	if text := q.Q(); text != "" {
		w.Param("q", text)
	}
	if n := q.MaxResults(); n > 0 {
		w.UintParam("maxResults", n)
	}
	if q.age != AgeAllTime {
		w.TimeParam("publishedAfter", q.publishedAfter())
	}

	w.RawParam("safeSearch", q.safeSearch.String())

	if q.HasLocation() {
		w.RawParam("location", formatFloat(q.latitude)+","+formatFloat(q.longitude))
		if q.radius >= 0 {
			w.RawParam("locationRadius", formatFloat(q.radius)+"m")
		}
	}
	if order := orderV3(q.orderBy); order != "" {
		w.Param("order", order)
	}
	if q.restriction != "" {
		w.Param("regionCode", q.restriction)
	}
	if license := licenseV3(q.license); license != "" {
		w.Param("videoLicense", license)
	}
	if token := q.PageToken(); token != "" {
		w.Param("pageToken", token)
	}
}

// Age returns the publication age restriction.
func (q *Query) Age() Age { return q.age }

// SetAge restricts results by publication age.
func (q *Query) SetAge(age Age) {
	q.age = age
	q.SetETag("")
}

// SafeSearch returns the restricted-content filter.
func (q *Query) SafeSearch() SafeSearch { return q.safeSearch }

// SetSafeSearch sets the restricted-content filter.
func (q *Query) SetSafeSearch(s SafeSearch) {
	q.safeSearch = s
	q.SetETag("")
}

// Location returns the search centre in degrees and the radius in metres.
func (q *Query) Location() (latitude, longitude, radius float64) {
	return q.latitude, q.longitude, q.radius
}

// SetLocation restricts results to a circle. Coordinates outside
// [-90, 90] and [-180, 180], such as NoLocation, disable the restriction;
// a negative radius sends the centre alone.
func (q *Query) SetLocation(latitude, longitude, radius float64) {
	q.latitude = latitude
	q.longitude = longitude
	q.radius = radius
	q.SetETag("")
}

// HasLocation reports whether the location restriction is active.
func (q *Query) HasLocation() bool {
	return q.latitude >= -90 && q.latitude <= 90 &&
		q.longitude >= -180 && q.longitude <= 180
}

// OrderBy returns the requested ordering.
func (q *Query) OrderBy() string { return q.orderBy }

// SetOrderBy sets the ordering, e.g. OrderViewCount.
func (q *Query) SetOrderBy(orderBy string) {
	q.orderBy = orderBy
	q.SetETag("")
}

// Restriction returns the region code results are restricted to.
func (q *Query) Restriction() string { return q.restriction }

// SetRestriction restricts results to videos viewable in a region, given
// as an ISO 3166 country code.
func (q *Query) SetRestriction(region string) {
	q.restriction = region
	q.SetETag("")
}

// License returns the licence filter.
func (q *Query) License() string { return q.license }

// SetLicense filters by licence, e.g. LicenseCreativeCommons.
func (q *Query) SetLicense(license string) {
	q.license = license
	q.SetETag("")
}
