package sqlinline

const QInsertUser = `--sql 4aa99096-e44f-4605-a30c-44593d7ce4b8
insert into users (name, email, password_hash, image)
values ($1, lower($2), $3, $4)
returning id, plan, credits, created_at;
`

const QSelectUserByEmail = `--sql f824c8f4-f8db-4b1d-b9c0-0d3e1e92cbc8
select id, name, email, password_hash, image, bio, industry, experience,
       skills, linkedin, github, plan, credits, roadmap_completed,
       current_streak, last_login, created_at, updated_at
from users
where email = lower($1)
limit 1;
`

const QSelectUserByID = `--sql ba826912-7321-40e1-97c3-7dc655bc8e6d
select id, name, email, password_hash, image, bio, industry, experience,
       skills, linkedin, github, plan, credits, roadmap_completed,
       current_streak, last_login, created_at, updated_at
from users
where id = $1::uuid
limit 1;
`

const QUpdateLastLogin = `--sql c136b9dc-fcd5-4fef-b0c1-d547ce26e12f
update users
set last_login = now(),
    updated_at = now()
where id = $1::uuid;
`

const QUpdateUserProfile = `--sql 0f6feaaf-d7b7-4de8-a68b-0084b8fe217b
update users
set name = $2,
    bio = $3,
    image = $4,
    industry = $5,
    experience = $6,
    skills = $7,
    linkedin = $8,
    github = $9,
    updated_at = now()
where id = $1::uuid
returning id, name, email, password_hash, image, bio, industry, experience,
          skills, linkedin, github, plan, credits, roadmap_completed,
          current_streak, last_login, created_at, updated_at;
`

const QDebitCredit = `--sql 47f4a7bf-9393-4852-81a0-cd8c32cc576f
update users
set credits = credits - 1,
    updated_at = now()
where id = $1::uuid
  and credits > 0
returning credits;
`
