// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package catalog

// definitions holds every runnable query in display order; index i holds
// QueryID(i+1). The SQL runs unchanged on DuckDB and PostgreSQL.
//
// Groups that tie on the ranking keys are ordered by MIN(row_id), the load
// position of their first row.
var definitions = []Definition{
	{
		ID:    DrugRelatedVehicles,
		Slug:  "drug-related-vehicles",
		Label: "Top 10 vehicles involved in drug-related stops",
		SQL: `SELECT vehicle_number, COUNT(drugs_related_stop) AS drug_related_stop_count
FROM traffic_stop
WHERE drugs_related_stop = TRUE
GROUP BY vehicle_number
ORDER BY drug_related_stop_count DESC, MIN(row_id)
LIMIT 10`,
	},
	{
		ID:    MostSearchedViolations,
		Slug:  "most-searched-violations",
		Label: "Most frequently searched violations",
		SQL: `SELECT violation_raw, COUNT(violation_raw) AS search_count
FROM traffic_stop
WHERE search_conducted = TRUE
GROUP BY violation_raw
ORDER BY search_count DESC, MIN(row_id)
LIMIT 10`,
	},
	{
		ID:    ArrestsByDriverAge,
		Slug:  "arrests-by-driver-age",
		Label: "Driver age groups with highest arrest rates",
		SQL: `SELECT driver_age_raw, COUNT(is_arrested) AS arrest_count
FROM traffic_stop
WHERE is_arrested = TRUE
GROUP BY driver_age_raw
ORDER BY arrest_count DESC, MIN(row_id)
LIMIT 10`,
	},
	{
		ID:    GenderByCountry,
		Slug:  "gender-by-country",
		Label: "Gender distribution of drivers stopped in each country",
		SQL: `SELECT country_name, driver_gender, COUNT(driver_gender) AS gender_count
FROM traffic_stop
GROUP BY country_name, driver_gender
ORDER BY country_name, gender_count DESC, MIN(row_id)`,
	},
	{
		ID:    SearchesByRaceAndGender,
		Slug:  "searches-by-race-and-gender",
		Label: "Race and Gender Combination with the Highest Search Rate",
		SQL: `SELECT driver_race, driver_gender, COUNT(search_conducted) AS search_count
FROM traffic_stop
WHERE search_conducted = TRUE
GROUP BY driver_race, driver_gender
ORDER BY search_count DESC, MIN(row_id)
LIMIT 10`,
	},
	{
		ID:    StopsByTimeOfDay,
		Slug:  "stops-by-time-of-day",
		Label: "Time of Day with the Highest Number of Traffic Stops",
		SQL: `SELECT CAST(EXTRACT(HOUR FROM stop_date_time) AS INT) AS hour_of_day_24hr,
stop_time_12hr AS hour_min_in_12hr_format,
COUNT(*) AS stop_count
FROM traffic_stop
GROUP BY CAST(EXTRACT(HOUR FROM stop_date_time) AS INT), stop_time_12hr
ORDER BY stop_count DESC, MIN(row_id)
LIMIT 20`,
	},
	{
		ID:    AverageDurationByViolation,
		Slug:  "average-duration-by-violation",
		Label: "Average Stop Duration by Violation Type",
		SQL: `SELECT violation_raw,
ROUND(AVG(CASE stop_duration
    WHEN '0-15' THEN 7.5
    WHEN '16-30' THEN 23
    WHEN '30+' THEN 35
END), 2) AS avg_stop_duration
FROM traffic_stop
GROUP BY violation_raw
ORDER BY avg_stop_duration DESC NULLS LAST, MIN(row_id)`,
	},
	{
		ID:    NightTimeArrests,
		Slug:  "night-time-arrests",
		Label: "Likelihood of Arrests During Night-Time Traffic Stops",
		SQL: `SELECT CAST(EXTRACT(HOUR FROM stop_date_time) AS INT) AS hour_of_day,
stop_time_12hr AS hour_min_in_12hr_format,
COUNT(is_arrested) AS arrest_count
FROM traffic_stop
WHERE is_arrested = TRUE
GROUP BY CAST(EXTRACT(HOUR FROM stop_date_time) AS INT), stop_time_12hr
ORDER BY arrest_count DESC, MIN(row_id)
LIMIT 10`,
	},
	{
		ID:    ViolationsWithSearchAndArrest,
		Slug:  "violations-with-search-and-arrest",
		Label: "Violations Most Commonly Associated with Searches or Arrests",
		SQL: `SELECT violation_raw, COUNT(*) AS total_stops_with_search_and_arrest
FROM traffic_stop
WHERE search_conducted = TRUE AND is_arrested = TRUE
GROUP BY violation_raw
ORDER BY total_stops_with_search_and_arrest DESC, MIN(row_id)`,
	},
	{
		ID:    ViolationsUnder25,
		Slug:  "violations-under-25",
		Label: "Most Common Violations Among Drivers Under 25",
		SQL: `SELECT violation_raw, COUNT(violation_raw) AS violation_count
FROM traffic_stop
WHERE driver_age_raw < 25
GROUP BY violation_raw
ORDER BY violation_count DESC, MIN(row_id)`,
	},
	{
		ID:    ViolationsRarelySearched,
		Slug:  "violations-rarely-searched",
		Label: "Violations That Rarely Lead to Searches or Arrests",
		SQL: `SELECT violation_raw, COUNT(*) AS total_stops_without_search_or_arrest
FROM traffic_stop
WHERE search_conducted = FALSE AND is_arrested = FALSE
GROUP BY violation_raw
ORDER BY total_stops_without_search_or_arrest ASC, MIN(row_id)`,
	},
	{
		ID:    DrugStopsByCountry,
		Slug:  "drug-stops-by-country",
		Label: "Countries with the Highest Rate of Drug-Related Traffic Stops",
		SQL: `SELECT country_name, COUNT(drugs_related_stop) AS drug_related_stop_count
FROM traffic_stop
WHERE drugs_related_stop = TRUE
GROUP BY country_name
ORDER BY drug_related_stop_count DESC, MIN(row_id)`,
	},
	{
		ID:    ArrestRateByCountryAndViolation,
		Slug:  "arrest-rate-by-country-and-violation",
		Label: "Arrest Rate by Country and Type of Violation",
		SQL: `SELECT country_name, violation_raw,
ROUND(AVG(CASE WHEN is_arrested = TRUE THEN 1.0 ELSE 0 END) * 100, 2) AS arrest_rate
FROM traffic_stop
GROUP BY country_name, violation_raw
ORDER BY arrest_rate DESC, MIN(row_id)`,
	},
	{
		ID:    TopSearchCountry,
		Slug:  "top-search-country",
		Label: "Country with the Highest Number of Stops Involving a Search",
		SQL: `SELECT country_name, COUNT(search_conducted) AS search_count
FROM traffic_stop
WHERE search_conducted = TRUE
GROUP BY country_name
ORDER BY search_count DESC, MIN(row_id)
LIMIT 1`,
	},
	{
		ID:    YearlyBreakdownByCountry,
		Slug:  "yearly-breakdown-by-country",
		Label: "Yearly Breakdown of Stops and Arrests by Country",
		SQL: `WITH yearly_summary AS (
    SELECT country_name,
    CAST(EXTRACT(YEAR FROM stop_date_time) AS INT) AS year,
    COUNT(is_arrested) AS total_stops,
    SUM(CASE WHEN is_arrested = TRUE THEN 1 ELSE 0 END) AS arrest_count
    FROM traffic_stop
    GROUP BY country_name, CAST(EXTRACT(YEAR FROM stop_date_time) AS INT)
)
SELECT country_name, year, total_stops, arrest_count,
SUM(arrest_count) OVER (PARTITION BY country_name ORDER BY year) AS cumulative_arrest_count
FROM yearly_summary
ORDER BY country_name, year`,
	},
	{
		ID:    ViolationTrendsByAgeAndRace,
		Slug:  "violation-trends-by-age-and-race",
		Label: "Driver Violation Trends by Age and Race",
		SQL: `SELECT ts.driver_age_raw, ts.driver_race, COUNT(*) AS count_race
FROM (
    SELECT row_id, driver_age_raw, driver_race
    FROM traffic_stop
    WHERE driver_age_raw IS NOT NULL AND driver_race IS NOT NULL
) AS ts
GROUP BY ts.driver_age_raw, ts.driver_race
ORDER BY ts.driver_age_raw, count_race, MIN(ts.row_id)`,
	},
	{
		ID:    StopsByPeriod,
		Slug:  "stops-by-period",
		Label: "Time Period Analysis of Stops: Number of Stops by Year, Month, and Hour",
		SQL: `SELECT CAST(EXTRACT(YEAR FROM stop_date) AS INT) AS stop_year,
CAST(EXTRACT(MONTH FROM stop_date) AS INT) AS stop_month,
CAST(EXTRACT(HOUR FROM stop_date_time) AS INT) AS stop_hour,
COUNT(*) AS total_stops
FROM traffic_stop
GROUP BY CAST(EXTRACT(YEAR FROM stop_date) AS INT),
CAST(EXTRACT(MONTH FROM stop_date) AS INT),
CAST(EXTRACT(HOUR FROM stop_date_time) AS INT)
ORDER BY stop_year, stop_month, stop_hour`,
	},
	{
		ID:    ViolationSearchAndArrestRates,
		Slug:  "violation-search-and-arrest-rates",
		Label: "Violations with Highest Search and Arrest Rates",
		SQL: `SELECT violation_raw, COUNT(violation_raw) AS total_violation_raw_count,
SUM(CASE WHEN search_conducted = TRUE THEN 1 ELSE 0 END) AS search_count,
SUM(CASE WHEN is_arrested = TRUE THEN 1 ELSE 0 END) AS arrest_count,
ROUND(AVG(CASE WHEN search_conducted = TRUE THEN 1.0 ELSE 0 END) * 100, 2) AS search_avg_rate,
ROUND(AVG(CASE WHEN is_arrested = TRUE THEN 1.0 ELSE 0 END) * 100, 2) AS arrest_avg_rate
FROM traffic_stop
GROUP BY violation_raw
ORDER BY search_count DESC, arrest_count DESC, search_avg_rate DESC, arrest_avg_rate DESC, MIN(row_id)`,
	},
	{
		ID:    DemographicsByCountry,
		Slug:  "demographics-by-country",
		Label: "Driver Demographics by Country: Age, Gender, and Race",
		SQL: `SELECT country_name,
ROUND(AVG(driver_age_raw)) AS avg_age,
COUNT(*) AS total_stops,
SUM(CASE WHEN driver_gender = 'M' THEN 1 ELSE 0 END) AS male_count,
SUM(CASE WHEN driver_gender = 'F' THEN 1 ELSE 0 END) AS female_count,
SUM(CASE WHEN driver_race = 'White' THEN 1 ELSE 0 END) AS white_count,
SUM(CASE WHEN driver_race = 'Black' THEN 1 ELSE 0 END) AS black_count,
SUM(CASE WHEN driver_race = 'Hispanic' THEN 1 ELSE 0 END) AS hispanic_count,
SUM(CASE WHEN driver_race = 'Asian' THEN 1 ELSE 0 END) AS asian_count,
SUM(CASE WHEN driver_race = 'Other' THEN 1 ELSE 0 END) AS other_race_count
FROM traffic_stop
GROUP BY country_name
ORDER BY total_stops DESC, MIN(row_id)`,
	},
	{
		ID:    TopArrestRateViolations,
		Slug:  "top-arrest-rate-violations",
		Label: "Top 5 Violations with the Highest Arrest Rates",
		SQL: `SELECT violation_raw,
COUNT(is_arrested) AS total_stops,
SUM(CASE WHEN is_arrested = TRUE THEN 1 ELSE 0 END) AS arrest_count,
ROUND(AVG(CASE WHEN is_arrested = TRUE THEN 1.0 ELSE 0 END) * 100, 2) AS arrest_avg_rate
FROM traffic_stop
GROUP BY violation_raw
ORDER BY arrest_avg_rate DESC, MIN(row_id)
LIMIT 5`,
	},
}
