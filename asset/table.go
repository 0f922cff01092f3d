package asset

// DefaultTable is the TOML table loaded when no table file is given
const DefaultTable = `
[table]
name = "Sandbox"
width = 1000
height = 2000
glass_height = 210

# === Walls ===

[[surface]]
name = "Outer"
points = [[0, 2000], [0, 0], [1000, 0], [1000, 2000], [0, 2000]]
top = 60
material = { elasticity = 0.6, friction = 0.1 }

[[surface]]
name = "TopArch"
points = [[0, 250], [80, 90], [250, 0]]
top = 60

[[surface]]
name = "LeftInlane"
points = [[0, 1600], [330, 1880]]
top = 50

[[surface]]
name = "RightInlane"
points = [[670, 1880], [1000, 1600]]
top = 50

[[surface]]
name = "LeftSling"
points = [[180, 1450], [300, 1700], [180, 1640]]
closed = true
top = 50
[surface.slingshot]
force = -15
threshold = 2
segments = [0]

[[surface]]
name = "RightSling"
points = [[820, 1450], [820, 1640], [700, 1700]]
closed = true
top = 50
[surface.slingshot]
force = -15
threshold = 2
segments = [1]

# === Bumpers ===

[[bumper]]
name = "Bumper1"
center = [400, 500]
force = 12

[[bumper]]
name = "Bumper2"
center = [600, 500]

[[bumper]]
name = "Bumper3"
center = [500, 650]

# === Targets ===

[[hit_target]]
name = "Drop1"
position = [260, 950]
drop = true

[[hit_target]]
name = "Drop2"
position = [320, 950]
drop = true

[[hit_target]]
name = "Drop3"
position = [380, 950]
drop = true

[[hit_target]]
name = "StandupLeft"
position = [120, 700]
rotation = 60
skin = "TargetBlue"

[[hit_target]]
name = "StandupRight"
position = [880, 700]
rotation = -60
skin = "TargetRed"

# === Lanes ===

[[trigger]]
name = "LaneA"
center = [400, 200]

[[trigger]]
name = "LaneB"
center = [500, 200]

[[trigger]]
name = "LaneC"
center = [600, 200]

[[trigger]]
name = "Outhole"
center = [500, 1960]
radius = 60

# === Saucer ===

[[kicker]]
name = "Saucer"
center = [820, 1150]
radius = 30

[[light]]
name = "LaneALight"
center = [400, 260]

[[light]]
name = "LaneBLight"
center = [500, 260]

[[light]]
name = "LaneCLight"
center = [600, 260]

[[light]]
name = "DropBankLight"
center = [320, 1010]

# === Ramp ===

[[primitive]]
name = "Ramp"
position = [700, 900, 0]
vertices = [[0, 0, 30], [120, -300, 90], [220, -300, 90], [100, 0, 30]]
edges = [[0, 1], [2, 3]]

[[ball]]
position = [500, 1000, 25]
velocity = [3, -25, 0]
`

// DefaultScript is the Lua rule set paired with DefaultTable
const DefaultScript = `
lanes = { "LaneA", "LaneB", "LaneC" }
lit = {}
score = 0

local function award(points)
  score = score + points
end

local function checkLanes()
  for _, lane in ipairs(lanes) do
    if not lit[lane] then
      return
    end
  end
  award(5000)
  for _, lane in ipairs(lanes) do
    lit[lane] = false
    SetLight(lane .. "Light", false)
  end
  CreateBallIn("Saucer")
  Kick("Saucer", -20, 25)
end

for _, lane in ipairs(lanes) do
  _G[lane .. "_Hit"] = function()
    award(100)
    lit[lane] = true
    SetLight(lane .. "Light", true)
    checkLanes()
  end
end

function Bumper1_Hit() award(10) end
function Bumper2_Hit() award(10) end
function Bumper3_Hit() award(10) end

function LeftSling_Slingshot() award(5) end
function RightSling_Slingshot() award(5) end

function Saucer_Hit()
  award(500)
  Kick("Saucer", 200, 12)
end

function StandupLeft_Hit() award(50) end
function StandupRight_Hit() award(50) end

local function dropBankDown()
  return IsDropped("Drop1") and IsDropped("Drop2") and IsDropped("Drop3")
end

local function dropped()
  award(250)
  if dropBankDown() then
    SetLight("DropBankLight", true)
  end
end

Drop1_Dropped = dropped
Drop2_Dropped = dropped
Drop3_Dropped = dropped

function Outhole_Hit()
  DestroyBalls("Outhole")
  if dropBankDown() then
    SetDropped("Drop1", false)
    SetDropped("Drop2", false)
    SetDropped("Drop3", false)
    SetLight("DropBankLight", false)
  end
  if BallCount() <= 1 then
    CreateBall(500, 1000, 25, 3, -25)
  end
end
`
