package model

import "time"

// RunRecord is what gets archived for every finished generation run.
type RunRecord struct {
	RunID          string    `dynamodbav:"PK"`
	Input          string    `dynamodbav:"Input"`
	Output         string    `dynamodbav:"Output"`
	Key            string    `dynamodbav:"Key"`
	Generations    int       `dynamodbav:"Generations"`
	PopulationSize int       `dynamodbav:"PopulationSize"`
	Seed           int64     `dynamodbav:"Seed"`
	BestFitness    int       `dynamodbav:"BestFitness"`
	CreatedAt      time.Time `dynamodbav:"CreatedAt"`
}
