package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"vizhener/internal/cipher"
	"vizhener/internal/customdict"
	"vizhener/internal/dictionary"
	"vizhener/internal/logging"
	"vizhener/pkg/options"
)

func main() {
	logging.SetDebug(os.Getenv("DEBUG") != "")

	norm := cipher.NewNormalizer(cipher.MustAlphabet(cipher.Russian))
	dictionaryPath := getenv("DICTIONARY_PATH", "russian.txt")
	lines, err := dictionary.LoadFile(dictionaryPath)
	if err != nil {
		logging.Errorf("init error: %v", err)
		os.Exit(1)
	}
	corpus := dictionary.Build(lines, norm, getEnvInt("MIN_KEY_LENGTH", dictionary.DefaultMinKeyLength))
	logging.Infof("dictionary %s: %d words, %d candidate keys", dictionaryPath, len(corpus.Words), len(corpus.Candidates))

	var (
		store  wordStore
		custom []string
	)
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		})
		dict := customdict.New(client, os.Getenv("REDIS_KEY"))
		store = dict

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		custom, err = dictionary.LoadCustom(ctx, dict, norm)
		cancel()
		if err != nil {
			logging.Warnf("не удалось загрузить кастомные слова: %v", err)
		}
	}

	srv := newServer(corpus, store, custom,
		options.WithTopK(getEnvInt("TOP_K", 10)),
		options.WithWorkers(getEnvInt("WORKERS", 0)),
	)

	addr := getenv("HTTP_ADDR", ":8080")
	logging.Infof("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}
