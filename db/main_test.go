package db

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/util"
)

var testStore Store

func TestMain(m *testing.M) {
	config, err := util.LoadConfig("../")
	if err != nil {
		log.Fatal("Cannot read the config: ", err)
	}

	connPool, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal("Cannot connect to the database: ", err)
	}

	testStore = NewStore(connPool)

	os.Exit(m.Run())
}
