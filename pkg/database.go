package evsel

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx"
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

type timingWindowEntry struct {
	Channel string  `db:"Channel"`
	Kind    string  `db:"Kind"`
	Lower   float32 `db:"Lower"`
	Upper   float32 `db:"Upper"`
}

type correlationCutEntry struct {
	Cut       string  `db:"Cut"`
	Slope     float32 `db:"Slope"`
	Intercept float32 `db:"Intercept"`
}

// LoadSelectionParams builds the selection parameters for a run, applying
// the per-run timing-window and correlation-coefficient overrides stored in
// the conditions database. Channels or cuts with no matching row keep their
// compiled defaults.
func LoadSelectionParams(db *sqlx.DB, runNumber int, system CollisionSystem) (*SelectionParams, error) {
	params := NewSelectionParams(system)

	err := loadTimingWindows(db, runNumber, params)
	if err != nil {
		errMessage := fmt.Errorf("error getting timing windows from database: %w", err)
		logger.Error(errMessage.Error())
		return nil, errMessage
	}
	err = loadCorrelationCuts(db, runNumber, params)
	if err != nil {
		errMessage := fmt.Errorf("error getting correlation cuts from database: %w", err)
		logger.Error(errMessage.Error())
		return nil, errMessage
	}
	return params, nil
}

func loadTimingWindows(db *sqlx.DB, runNumber int, params *SelectionParams) error {
	query := "SELECT Channel, Kind, Lower, Upper FROM TimingWindows WHERE MinRun <= %d and MaxRun >= %d"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if configuration.Verbosity > 0 {
		logger.Info("Reading timing windows from database", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		return fmt.Errorf("error querying database: %w", err)
	}

	for rows.Next() {
		result := timingWindowEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			return fmt.Errorf("error scanning DB row: %w", err)
		}
		window := TimeWindow{Lower: result.Lower, Upper: result.Upper}
		switch result.Channel + "/" + result.Kind {
		case "V0A/BB":
			params.V0ABB = window
		case "V0A/BG":
			params.V0ABG = window
		case "V0C/BB":
			params.V0CBB = window
		case "V0C/BG":
			params.V0CBG = window
		case "FDA/BB":
			params.FDABB = window
		case "FDA/BG":
			params.FDABG = window
		case "FDC/BB":
			params.FDCBB = window
		case "FDC/BG":
			params.FDCBG = window
		case "ZNA/BB":
			params.ZNABB = window
		case "ZNA/BG":
			params.ZNABG = window
		case "ZNC/BB":
			params.ZNCBB = window
		case "ZNC/BG":
			params.ZNCBG = window
		case "T0A/BB":
			params.T0ABB = window
		case "T0C/BB":
			params.T0CBB = window
		default:
			if configuration.Verbosity > 0 {
				message := fmt.Sprintf("Unknown timing window %s/%s, ignored", result.Channel, result.Kind)
				logger.Info(message, "database")
			}
		}
	}
	return nil
}

func loadCorrelationCuts(db *sqlx.DB, runNumber int, params *SelectionParams) error {
	query := "SELECT Cut, Slope, Intercept FROM CorrelationCuts WHERE MinRun <= %d and MaxRun >= %d"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if configuration.Verbosity > 0 {
		logger.Info("Reading correlation cuts from database", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		return fmt.Errorf("error querying database: %w", err)
	}

	for rows.Next() {
		result := correlationCutEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			return fmt.Errorf("error scanning DB row: %w", err)
		}
		switch result.Cut {
		case "V0MOnVsOf":
			params.V0MOnVsOfA = result.Intercept
			params.V0MOnVsOfB = result.Slope
		case "SPDOnVsOf":
			params.SPDOnVsOfA = result.Intercept
			params.SPDOnVsOfB = result.Slope
		case "SPDClsVsTkl":
			params.SPDClsVsTklA = result.Intercept
			params.SPDClsVsTklB = result.Slope
		case "V0C012vsTkl":
			params.V0C012vsTklA = result.Intercept
			params.V0C012vsTklB = result.Slope
		case "V0Casym":
			params.V0CasymA = result.Intercept
			params.V0CasymB = result.Slope
		default:
			if configuration.Verbosity > 0 {
				message := fmt.Sprintf("Unknown correlation cut %s, ignored", result.Cut)
				logger.Info(message, "database")
			}
		}
	}
	return nil
}
