package database

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/rickgao/market-loader/internal/config"
)

// BuildConnString builds a PostgreSQL connection string from config.
func BuildConnString(cfg config.DBConfig) string {
	// URL-encode password to handle special characters
	escapedPassword := url.QueryEscape(cfg.Password)

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		escapedPassword,
		cfg.Host,
		cfg.Port,
		cfg.Name,
		sslMode,
	)
	if secs := int(cfg.ConnectTimeout / time.Second); secs > 0 {
		connStr += "&connect_timeout=" + strconv.Itoa(secs)
	}
	return connStr
}

// MySQLConfig builds the driver configuration from config. Times are read
// and written as UTC; see mysqlArgs for loaded_at.
func MySQLConfig(cfg config.DBConfig) *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Timeout = cfg.ConnectTimeout
	mc.ReadTimeout = cfg.ReadTimeout
	mc.WriteTimeout = cfg.WriteTimeout
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc
}

// BuildMySQLDSN builds a MySQL DSN from config.
func BuildMySQLDSN(cfg config.DBConfig) string {
	return MySQLConfig(cfg).FormatDSN()
}
