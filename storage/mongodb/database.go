package mongodbstorage

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/storage"
	"github.com/spikeekips/mitum-dao/util/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const defaultColRecord = "dao_record"

type recordDoc struct {
	ID      string   `bson:"_id"`
	Records [][]byte `bson:"records"`
}

// Database keeps the records of name in one document; the newest record is
// the first.
type Database struct {
	*logging.Logging
	client      *mongo.Client
	db          *mongo.Database
	execTimeout time.Duration
}

func NewDatabase(uri string, connectTimeout, execTimeout time.Duration) (*Database, error) {
	cs, err := checkURI(uri)
	if err != nil {
		return nil, err
	}

	clientOpts := options.Client().ApplyURI(uri)
	if err := clientOpts.Validate(); err != nil {
		return nil, storage.WrapStorageError(err)
	}

	var client *mongo.Client
	{
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		c, err := mongo.Connect(ctx, clientOpts)
		if err != nil {
			return nil, storage.WrapStorageError(errors.Wrap(err, "connect timeout"))
		}

		client = c
	}

	{
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return nil, storage.WrapStorageError(errors.Wrap(err, "ping timeout"))
		}
	}

	return &Database{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "mongodb-database")
		}),
		client:      client,
		db:          client.Database(cs.Database),
		execTimeout: execTimeout,
	}, nil
}

// NewDatabaseFromURI accepts "connectTimeout" and "execTimeout" query.
func NewDatabaseFromURI(uri string) (*Database, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrap(err, "invalid storage uri")
	}

	connectTimeout := time.Second * 2
	execTimeout := time.Second * 2

	query := parsed.Query()
	if d, err := parseDurationFromQuery(query, "connectTimeout", connectTimeout); err != nil {
		return nil, err
	} else {
		connectTimeout = d
	}

	if d, err := parseDurationFromQuery(query, "execTimeout", execTimeout); err != nil {
		return nil, err
	} else {
		execTimeout = d
	}

	return NewDatabase(uri, connectTimeout, execTimeout)
}

func (st *Database) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), st.execTimeout)
	defer cancel()

	return storage.WrapStorageError(st.client.Disconnect(ctx))
}

func (st *Database) Records(name string) ([][]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), st.execTimeout)
	defer cancel()

	var doc recordDoc

	res := st.db.Collection(defaultColRecord).FindOne(ctx, bson.M{"_id": name})
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, storage.WrapStorageError(err)
	}

	if err := res.Decode(&doc); err != nil {
		return nil, storage.WrapStorageError(err)
	}

	return doc.Records, nil
}

func (st *Database) Save(name string, b []byte, maxBackups int) error {
	records, err := st.Records(name)
	if err != nil {
		return err
	}

	if maxBackups < 0 {
		maxBackups = 0
	}

	if len(records) > maxBackups {
		records = records[:maxBackups]
	}

	doc := recordDoc{
		ID:      name,
		Records: append([][]byte{b}, records...),
	}

	ctx, cancel := context.WithTimeout(context.Background(), st.execTimeout)
	defer cancel()

	_, err = st.db.Collection(defaultColRecord).ReplaceOne(
		ctx,
		bson.M{"_id": name},
		doc,
		options.Replace().SetUpsert(true),
	)

	return storage.WrapStorageError(err)
}

func checkURI(uri string) (connstring.ConnString, error) {
	cs, err := connstring.Parse(uri)
	if err != nil {
		return connstring.ConnString{}, storage.WrapStorageError(err)
	}

	if len(cs.Database) < 1 {
		return connstring.ConnString{}, storage.WrapStorageError(
			errors.Errorf("empty database name in mongodb uri: '%v'", uri))
	}

	return cs, nil
}

func parseDurationFromQuery(query url.Values, key string, v time.Duration) (time.Duration, error) {
	sl, found := query[key]
	if !found || len(sl) < 1 {
		return v, nil
	}

	s := sl[len(sl)-1]
	if len(strings.TrimSpace(s)) < 1 {
		return v, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s value for mongodb", key)
	}

	return d, nil
}
