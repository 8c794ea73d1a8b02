package routes

import (
	"github.com/14kear/online_elections/internal/handlers"
	"github.com/gin-gonic/gin"
)

func RegisterElectionRoutes(rg *gin.RouterGroup, handler *handlers.ElectionHandler) {
	{
		rg.POST("/elections", handler.CreateElection)
		rg.GET("/elections", handler.ListElections)
		rg.GET("/elections/:id", handler.GetElection)
		rg.PUT("/elections/:id", handler.UpdateElection)
		rg.DELETE("/elections/:id", handler.DeleteElection)

		rg.POST("/elections/:id/start", handler.StartElection)
		rg.POST("/elections/:id/close", handler.CloseElection)
		rg.POST("/elections/:id/publish", handler.PublishResults)

		rg.GET("/elections/:id/results", handler.GetResults)
		rg.GET("/elections/:id/stats", handler.GetStats)
	}
}

func RegisterVoteRoutes(rg *gin.RouterGroup, handler *handlers.ElectionHandler) {
	{
		rg.POST("/elections/:id/vote", handler.CastVote)
		rg.GET("/elections/:id/can-vote", handler.CheckCanVote)
		rg.GET("/elections/:id/has-voted", handler.HasVoted)
		rg.GET("/elections/:id/vote-count", handler.VoteCount)
		rg.GET("/elections/:id/votes", handler.ElectionVotes)

		rg.GET("/votes/history", handler.VoteHistory)
	}
}
