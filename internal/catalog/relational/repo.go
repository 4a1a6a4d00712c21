package relational

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"travelbrowser/internal/catalog"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS countries (
  name      VARCHAR PRIMARY KEY,
  flag      VARCHAR,
  code      VARCHAR,
  seq       INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS places (
  country           VARCHAR NOT NULL,
  name              VARCHAR NOT NULL,
  short_description VARCHAR,
  description       VARCHAR,
  seq               INTEGER NOT NULL,
  PRIMARY KEY(country, name)
);

CREATE TABLE IF NOT EXISTS place_images (
  country  VARCHAR NOT NULL,
  place    VARCHAR NOT NULL,
  ordinal  INTEGER NOT NULL,
  url      VARCHAR NOT NULL,
  PRIMARY KEY(country, place, ordinal)
);

CREATE TABLE IF NOT EXISTS weather (
  country     VARCHAR PRIMARY KEY,
  observed_on VARCHAR,
  description VARCHAR,
  icon_url    VARCHAR,
  forecast    VARCHAR
);
`

// Repo is the DuckDB-backed catalog.Source.
type Repo struct {
	db *sql.DB

	// Comparator is not safe for concurrent use.
	mu  sync.Mutex
	cmp *catalog.Comparator
}

// RepoOption configures a Repo.
type RepoOption func(*Repo)

// WithLocale sets the collation used for name ordering.
func WithLocale(tag string) RepoOption {
	return func(r *Repo) {
		r.cmp = catalog.NewComparator(tag)
	}
}

func NewRepo(db *sql.DB, opts ...RepoOption) *Repo {
	r := &Repo{db: db}
	for _, opt := range opts {
		opt(r)
	}
	if r.cmp == nil {
		r.cmp = catalog.NewComparator("en")
	}
	return r
}

func (r *Repo) Close() error {
	return r.db.Close()
}

func (r *Repo) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, SchemaSQL)
	return err
}

// Seed loads s into an empty catalog. It reports false without writing when
// countries already exist.
func (r *Repo) Seed(ctx context.Context, s catalog.Seed) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM countries`).Scan(&n); err != nil {
		return false, fmt.Errorf("count countries: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	for i, c := range s.Countries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO countries(name, flag, code, seq) VALUES(?,?,?,?)`,
			c.Name, nullStr(c.Flag), nullStr(c.Code), i,
		); err != nil {
			return false, fmt.Errorf("insert country %s: %w", c.Name, err)
		}
	}

	for i, p := range s.Places {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO places(country, name, short_description, description, seq) VALUES(?,?,?,?,?)`,
			p.Country, p.Name, nullStr(p.ShortDescription), nullStr(p.Description), i,
		); err != nil {
			return false, fmt.Errorf("insert place %s/%s: %w", p.Country, p.Name, err)
		}
		for j, url := range p.Images {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO place_images(country, place, ordinal, url) VALUES(?,?,?,?)`,
				p.Country, p.Name, j, url,
			); err != nil {
				return false, fmt.Errorf("insert image %s/%s: %w", p.Country, p.Name, err)
			}
		}
	}

	for _, w := range s.Weather {
		forecast, err := json.Marshal(w.Forecast)
		if err != nil {
			return false, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO weather(country, observed_on, description, icon_url, forecast) VALUES(?,?,?,?,?)`,
			w.Country, nullStr(w.Date), nullStr(w.Description), nullStr(w.IconURL), string(forecast),
		); err != nil {
			return false, fmt.Errorf("insert weather %s: %w", w.Country, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// orderBy maps a SortOrder onto an ORDER BY clause. Name orders are
// re-sorted with the collator afterwards.
func orderBy(order catalog.SortOrder) string {
	switch order {
	case catalog.Ascending:
		return " ORDER BY name ASC"
	case catalog.Descending:
		return " ORDER BY name DESC"
	}
	return " ORDER BY seq"
}

// Countries returns every country in the given order.
func (r *Repo) Countries(ctx context.Context, order catalog.SortOrder) ([]catalog.Country, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, flag, code FROM countries`+orderBy(order))
	if err != nil {
		return nil, fmt.Errorf("query countries: %w", err)
	}
	defer rows.Close()

	countries := []catalog.Country{}
	for rows.Next() {
		var c catalog.Country
		var flag, code sql.NullString
		if err := rows.Scan(&c.Name, &flag, &code); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		c.Flag = flag.String
		c.Code = code.String
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	r.mu.Lock()
	r.cmp.SortCountries(order, countries)
	r.mu.Unlock()
	return countries, nil
}

// Places returns the places of one country, images included. An unknown
// country is catalog.ErrCountryNotFound; a known one may have no places.
func (r *Repo) Places(ctx context.Context, country string, order catalog.SortOrder) ([]catalog.Place, error) {
	if err := r.requireCountry(ctx, country); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT name, short_description, description FROM places WHERE country = ?`+orderBy(order),
		country,
	)
	if err != nil {
		return nil, fmt.Errorf("query places: %w", err)
	}
	defer rows.Close()

	places := []catalog.Place{}
	for rows.Next() {
		p := catalog.Place{Country: country}
		var short, long sql.NullString
		if err := rows.Scan(&p.Name, &short, &long); err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		p.ShortDescription = short.String
		p.Description = long.String
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	images, err := r.images(ctx, country)
	if err != nil {
		return nil, err
	}
	for i := range places {
		places[i].Images = images[places[i].Name]
		if places[i].Images == nil {
			places[i].Images = []string{}
		}
	}

	r.mu.Lock()
	r.cmp.SortPlaces(order, places)
	r.mu.Unlock()
	return places, nil
}

// Place returns one place by country and name.
func (r *Repo) Place(ctx context.Context, country, name string) (catalog.Place, error) {
	places, err := r.Places(ctx, country, catalog.Natural)
	if err != nil {
		return catalog.Place{}, err
	}
	for _, p := range places {
		if p.Name == name {
			return p, nil
		}
	}
	return catalog.Place{}, fmt.Errorf("%q in %s: %w", name, country, catalog.ErrPlaceNotFound)
}

// Weather returns the stored conditions for a country.
func (r *Repo) Weather(ctx context.Context, country string) (catalog.Weather, error) {
	w := catalog.Weather{Country: country}
	var date, desc, icon, forecast sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT observed_on, description, icon_url, forecast FROM weather WHERE country = ?`, country,
	).Scan(&date, &desc, &icon, &forecast)
	if errors.Is(err, sql.ErrNoRows) {
		return w, fmt.Errorf("%s: %w", country, catalog.ErrNoWeather)
	}
	if err != nil {
		return w, fmt.Errorf("query weather: %w", err)
	}

	w.Date = date.String
	w.Description = desc.String
	w.IconURL = icon.String
	if forecast.Valid && forecast.String != "" {
		if err := json.Unmarshal([]byte(forecast.String), &w.Forecast); err != nil {
			return w, fmt.Errorf("decode forecast: %w", err)
		}
	}
	return w, nil
}

// Dump reads the whole catalog in its natural order.
func (r *Repo) Dump(ctx context.Context) (catalog.Seed, error) {
	var out catalog.Seed
	countries, err := r.Countries(ctx, catalog.Natural)
	if err != nil {
		return out, err
	}
	out.Countries = countries

	for _, c := range countries {
		places, err := r.Places(ctx, c.Name, catalog.Natural)
		if err != nil {
			return out, err
		}
		out.Places = append(out.Places, places...)

		w, err := r.Weather(ctx, c.Name)
		if errors.Is(err, catalog.ErrNoWeather) {
			continue
		}
		if err != nil {
			return out, err
		}
		out.Weather = append(out.Weather, w)
	}
	return out, nil
}

func (r *Repo) requireCountry(ctx context.Context, country string) error {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM countries WHERE name = ?`, country).Scan(&n); err != nil {
		return fmt.Errorf("lookup country: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", country, catalog.ErrCountryNotFound)
	}
	return nil
}

func (r *Repo) images(ctx context.Context, country string) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT place, url FROM place_images WHERE country = ? ORDER BY place, ordinal`, country,
	)
	if err != nil {
		return nil, fmt.Errorf("query images: %w", err)
	}
	defer rows.Close()

	images := make(map[string][]string)
	for rows.Next() {
		var place, url string
		if err := rows.Scan(&place, &url); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images[place] = append(images[place], url)
	}
	return images, rows.Err()
}

func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
