package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/urfave/cli.v1"

	"github.com/andrewyi/educrawler/src/server"
)

func main() {
	// .env不存在时忽略
	_ = godotenv.Load()

	app := cli.NewApp()

	app.Name = "educrawler"
	app.Version = "2.1.0"
	app.Usage = "抓取开放教育资源中的课程并导入学习平台"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config,c",
			Usage:  "配置文件",
			Value:  "./config.yaml",
			EnvVar: "EDUCRAWLER_CONFIG",
		},
	}

	runFlags := []cli.Flag{
		cli.StringSliceFlag{
			Name:  "topic,t",
			Usage: "只保留指定主题，可重复",
		},
		cli.BoolFlag{
			Name:  "no-db",
			Usage: "不写入数据库",
		},
	}

	s := server.NewServer()
	app.Flags = append(app.Flags, runFlags...)
	app.Action = s.Start
	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "抓取全部站点并写入输出",
			Flags:  runFlags,
			Action: s.Start,
		},
		{
			Name:  "integrate",
			Usage: "把已有的json报告导入数据库",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "input,i",
					Usage: "json报告路径，默认为输出目录下的报告",
				},
			},
			Action: s.Integrate,
		},
		{
			Name:      "classify",
			Usage:     "对标题与描述做主题分类",
			ArgsUsage: "<title> [description]",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "extended",
					Usage: "使用扩展关键词表",
				},
			},
			Action: s.Classify,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
