// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "GameVault")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "gamevault.log")

	viper.SetDefault("provider.name", "giantbomb")
	viper.SetDefault("provider.baseurl", "https://www.giantbomb.com/api")
	viper.SetDefault("provider.apikey", "")
	viper.SetDefault("provider.pagesize", 100)
	viper.SetDefault("provider.requestdelayms", 1000)
	viper.SetDefault("provider.timeoutseconds", 30)
	viper.SetDefault("provider.maxretries", 3)

	viper.SetDefault("dedup.normalize", "exact")

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "gamevault.db")
	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "gamevault")
	viper.SetDefault("output.mysql.password", "secret")
	viper.SetDefault("output.mysql.database", "gamevault")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")

	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.port", "8080")
}
